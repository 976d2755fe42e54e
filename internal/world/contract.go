package world

import "go.uber.org/zap"

// contract reports a programmer error: calling into the core in a way its
// contract forbids. Debug builds panic; release builds log and carry on.
func contract(log *zap.Logger, msg string, fields ...zap.Field) {
	if strictContracts {
		panic("driftwood: " + msg)
	}
	if log != nil {
		log.Warn("contract violation: "+msg, fields...)
	}
}
