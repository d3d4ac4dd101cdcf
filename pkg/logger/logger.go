package logger

import "go.uber.org/zap"

// Log is a no-op until Initialize is called, so packages can log
// unconditionally.
var Log = zap.NewNop()

func Initialize() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}

	Log = l

	return nil
}

var (
	String  = zap.String
	Int     = zap.Int
	Int64   = zap.Int64
	Float64 = zap.Float64
	Bool    = zap.Bool
	Error   = zap.Error
)
