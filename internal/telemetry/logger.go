// Package telemetry provides the structured logger shared by the CLI and
// the domain-stack packages. The resolver core never imports it.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
type Config struct {
	Level    string
	FilePath string
}

type nopSyncer struct {
	mu     sync.RWMutex
	writer io.Writer
}

func (n *nopSyncer) Write(p []byte) (int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.writer == nil {
		return 0, nil
	}
	return n.writer.Write(p)
}

func (n *nopSyncer) Sync() error { return nil }

var (
	sugarLogger   *zap.SugaredLogger
	baseLogger    *zap.Logger
	atomicLevel   zap.AtomicLevel
	once          sync.Once
	mu            sync.RWMutex
	logFile       *os.File
	currentConfig Config
	stderrSyncer  = &nopSyncer{writer: os.Stderr}
)

func initLogger() {
	if err := applyConfig(Config{Level: "info"}); err != nil {
		panic(fmt.Sprintf("logger initialization failed: %v", err))
	}
}

func applyConfig(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	level := parseLevel(cfg.Level)

	if atomicLevel == (zap.AtomicLevel{}) {
		atomicLevel = zap.NewAtomicLevelAt(level)
	} else {
		atomicLevel.SetLevel(level)
	}

	encoderCfg := zap.NewDevelopmentConfig().EncoderConfig
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stderrSyncer), atomicLevel)
	cores := []zapcore.Core{consoleCore}

	filePath := strings.TrimSpace(cfg.FilePath)
	if filePath != "" {
		fileCore, handle, err := buildFileCore(encoderCfg, filePath)
		if err != nil {
			return err
		}
		if logFile != nil && logFile != handle {
			_ = logFile.Close()
		}
		logFile = handle
		cores = append(cores, fileCore)
	} else if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	core := zapcore.NewTee(cores...)
	options := []zap.Option{
		zap.AddCaller(),
		zap.Development(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}

	newLogger := zap.New(core, options...)
	baseLogger = newLogger
	sugarLogger = newLogger.Sugar()
	zap.ReplaceGlobals(baseLogger)
	currentConfig = Config{Level: level.String(), FilePath: filePath}
	return nil
}

func buildFileCore(encoderCfg zapcore.EncoderConfig, path string) (zapcore.Core, *os.File, error) {
	cleanedPath := filepath.Clean(path)
	dir := filepath.Dir(cleanedPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %q: %w", dir, err)
		}
	}
	file, err := os.OpenFile(cleanedPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", cleanedPath, err)
	}
	fileEncoderCfg := encoderCfg
	fileEncoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	fileEncoder := zapcore.NewConsoleEncoder(fileEncoderCfg)
	core := zapcore.NewCore(fileEncoder, zapcore.AddSync(file), atomicLevel)
	return core, file, nil
}

// InitWithConfig initializes (or reconfigures) the global logger and
// returns the sugared logger plus a cleanup func to defer.
func InitWithConfig(cfg Config) (*zap.SugaredLogger, func(), error) {
	initializedHere := false
	var initErr error
	requested := Config{Level: parseLevel(cfg.Level).String(), FilePath: strings.TrimSpace(cfg.FilePath)}

	once.Do(func() {
		initErr = applyConfig(cfg)
		initializedHere = true
	})
	if initErr != nil {
		return nil, nil, fmt.Errorf("logger initialization failed: %w", initErr)
	}

	if !initializedHere {
		mu.RLock()
		sameConfig := currentConfig == requested
		mu.RUnlock()
		if !sameConfig {
			if err := applyConfig(cfg); err != nil {
				return nil, nil, fmt.Errorf("logger reconfiguration failed: %w", err)
			}
		}
	}

	mu.RLock()
	defer mu.RUnlock()
	if baseLogger == nil {
		return nil, nil, fmt.Errorf("logger initialization failed: baseLogger is nil")
	}
	return sugarLogger, createCleanupFunc(), nil
}

// Init sets up the global logger at info level.
func Init() (*zap.SugaredLogger, func()) {
	sugar, cleanup, err := InitWithConfig(Config{Level: "info"})
	if err != nil {
		panic(fmt.Sprintf("logger initialization failed: %v", err))
	}
	return sugar, cleanup
}

// Logger returns the global sugared logger, lazily initializing it at
// info level if nothing has configured it yet.
func Logger() *zap.SugaredLogger {
	once.Do(initLogger)
	mu.RLock()
	defer mu.RUnlock()
	if sugarLogger == nil {
		panic("logger initialization failed: sugarLogger is nil")
	}
	return sugarLogger
}

// With returns a child logger with the given structured fields attached.
func With(args ...interface{}) *zap.SugaredLogger {
	return Logger().With(args...)
}

func createCleanupFunc() func() {
	currentFile := logFile
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if baseLogger != nil {
			if err := baseLogger.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "error syncing logger: %v\n", err)
			}
		}
		if currentFile != nil {
			if err := currentFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
			}
			if logFile == currentFile {
				logFile = nil
			}
		}
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLevel dynamically changes the log level without re-initializing.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	if atomicLevel == (zap.AtomicLevel{}) {
		return
	}
	atomicLevel.SetLevel(parseLevel(level))
	currentConfig.Level = parseLevel(level).String()
}
