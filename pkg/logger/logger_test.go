package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ping-url/pkg/logger"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		ctx context.Context
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		ctx = context.Background()
	})

	Describe("New", func() {
		DescribeTable("level parsing",
			func(level string, enabled, disabled slog.Level) {
				log := logger.New(buf, level, false, "dev")
				Expect(log.Enabled(ctx, enabled)).To(BeTrue())
				Expect(log.Enabled(ctx, disabled)).To(BeFalse())
			},
			Entry("debug", "debug", slog.LevelDebug, slog.LevelDebug-1),
			Entry("info", "info", slog.LevelInfo, slog.LevelDebug),
			Entry("warn", "warn", slog.LevelWarn, slog.LevelInfo),
			Entry("error", "error", slog.LevelError, slog.LevelWarn),
			Entry("upper case", "WARN", slog.LevelWarn, slog.LevelInfo),
			Entry("unknown falls back to info", "verbose", slog.LevelInfo, slog.LevelDebug),
		)

		It("should write text records outside prod", func() {
			log := logger.New(buf, "info", false, "dev")
			log.Info("Website is reachable", slog.String("url", "http://localhost:8080"))

			Expect(buf.String()).To(ContainSubstring(`msg="Website is reachable"`))
			Expect(buf.String()).To(ContainSubstring("url=http://localhost:8080"))
			Expect(buf.String()).To(ContainSubstring("environment=dev"))
		})

		It("should write JSON records in prod", func() {
			log := logger.New(buf, "info", false, "prod")
			log.Warn("Error pinging URL")

			var record map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
			Expect(record).To(HaveKeyWithValue("msg", "Error pinging URL"))
			Expect(record).To(HaveKeyWithValue("level", "WARN"))
			Expect(record).To(HaveKeyWithValue("environment", "prod"))
		})

		It("should include the source location when asked", func() {
			log := logger.New(buf, "info", true, "dev")
			log.Info("hello")

			Expect(buf.String()).To(ContainSubstring("source="))
		})
	})
})
