package huffmantesting

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
}

type TestConfig struct {
	// Seed fixes the generator so that the generated tables are the same
	// from run to run.
	Seed            int64
	TestLabelPrefix string
	LogLevel        string // defaults to "INFO"
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	level := cfg.LogLevel
	if level == "" {
		level = "INFO"
	}
	logger.New(level)
	return TestContext{
		T:   t,
		Log: logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// NewTestContextAndGenerator is the usual entry point for tests that need
// both a logger and generated frequency tables.
func NewTestContextAndGenerator(t *testing.T, testLabelPrefix string) (TestContext, TestGenerator) {
	cfg := TestConfig{
		Seed:            1698342521,
		TestLabelPrefix: testLabelPrefix,
	}
	return NewTestContext(t, cfg), NewTestGenerator(t, cfg.Seed)
}
