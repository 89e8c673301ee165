package prober_test

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ping-url/internal/prober"
)

var _ = Describe("ClockSleeper", func() {
	var (
		clock   *clockwork.FakeClock
		sleeper *prober.ClockSleeper
	)

	BeforeEach(func() {
		clock = clockwork.NewFakeClock()
		sleeper = prober.NewClockSleeper(clock)
	})

	It("should wake up once the delay has elapsed", func(ctx SpecContext) {
		done := make(chan error, 1)
		go func() {
			done <- sleeper.Sleep(context.Background(), 5*time.Second)
		}()

		Expect(clock.BlockUntilContext(ctx, 1)).To(Succeed())
		clock.Advance(4 * time.Second)
		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		clock.Advance(time.Second)
		Eventually(done).Should(Receive(BeNil()))
	}, SpecTimeout(5*time.Second))

	It("should return early when the context is cancelled", func(ctx SpecContext) {
		sleepCtx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- sleeper.Sleep(sleepCtx, time.Hour)
		}()

		Expect(clock.BlockUntilContext(ctx, 1)).To(Succeed())
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	}, SpecTimeout(5*time.Second))

	It("should not wait for a zero delay", func() {
		Expect(sleeper.Sleep(context.Background(), 0)).To(Succeed())
	})

	It("should report a cancelled context even for a zero delay", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(sleeper.Sleep(ctx, 0)).To(MatchError(context.Canceled))
	})
})
