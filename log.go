// Package iotasdk is the module root: it owns SetupLoggers, the single
// place every subsystem's logger gets wired into a shared rotating log
// file, mirroring degeri-dcrlnd/log.go's role for that daemon's
// subsystems.
package iotasdk

import (
	"github.com/decred/slog"

	"github.com/iotaledger/iota-sdk-go/build"
	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/nodeclient"
	"github.com/iotaledger/iota-sdk-go/params"
	"github.com/iotaledger/iota-sdk-go/signer"
	"github.com/iotaledger/iota-sdk-go/txbuilder"
)

// replaceableLogger is a thin wrapper around a logger that is used so the
// logger can be replaced easily without some black pointer magic.
type replaceableLogger struct {
	slog.Logger
	subsystem string
}

// Loggers can not be used before the log rotator has been initialized with a
// log file. This must be performed early during application startup by
// calling InitLogRotator() on the root RotatingLogWriter.
var (
	// sdkPkgLoggers is a list of all root-package-level loggers that are
	// registered. They are tracked here so they can be replaced once the
	// SetupLoggers function is called with the final root logger.
	sdkPkgLoggers []*replaceableLogger

	// addSdkPkgLogger is a helper function that creates a new replaceable
	// root-package level logger and adds it to the list of loggers that
	// are replaced again later, once the final root logger is ready.
	addSdkPkgLogger = func(subsystem string) *replaceableLogger {
		l := &replaceableLogger{
			Logger:    build.NewSubLogger(subsystem, nil),
			subsystem: subsystem,
		}
		sdkPkgLoggers = append(sdkPkgLoggers, l)
		return l
	}

	// sdkLog is used by the small amount of glue code that lives in this
	// root package rather than in one of its subpackages.
	sdkLog = addSdkPkgLogger("SDKL")
)

// SetupLoggers initializes all package-global logger variables, wiring
// every subsystem's sublogger into root.
func SetupLoggers(root *build.RotatingLogWriter) {
	// Now that we have the proper root logger, we can replace the
	// placeholder root-package loggers.
	for _, l := range sdkPkgLoggers {
		l.Logger = build.NewSubLogger(l.subsystem, root)
		SetSubLogger(root, l.subsystem, l.Logger)
	}

	AddSubLogger(root, "TXBL", txbuilder.UseLogger)
	AddSubLogger(root, "PRAM", params.UseLogger)
	AddSubLogger(root, "IOTA", iotago.UseLogger)
	AddSubLogger(root, "SIGN", signer.UseLogger)
	AddSubLogger(root, "NODE", nodeclient.UseLogger)
}

// AddSubLogger is a helper method to conveniently create and register the
// logger of one or more sub systems.
func AddSubLogger(root *build.RotatingLogWriter, subsystem string,
	useLoggers ...func(slog.Logger)) {

	// Create and register just a single logger to prevent them from
	// overwriting each other internally.
	logger := build.NewSubLogger(subsystem, root)
	SetSubLogger(root, subsystem, logger, useLoggers...)
}

// SetSubLogger is a helper method to conveniently register the logger of a
// sub system. root.GenSubLogger (called from build.NewSubLogger above)
// already tracks the logger under subsystem; this just fans it out to
// every UseLogger hook that cares about it.
func SetSubLogger(root *build.RotatingLogWriter, subsystem string,
	logger slog.Logger, useLoggers ...func(slog.Logger)) {

	for _, useLogger := range useLoggers {
		useLogger(logger)
	}
}

// logClosure is used to provide a closure over expensive logging operations so
// don't have to be performed when the logging level doesn't warrant it.
type logClosure func() string

// String invokes the underlying function and returns the result.
func (c logClosure) String() string {
	return c()
}

// newLogClosure returns a new closure over a function that returns a string
// which itself provides a Stringer interface so that it can be used with the
// logging system.
func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
