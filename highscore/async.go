package highscore

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultSubmitTimeout = 5 * time.Second

// Async submits scores in the background. Failures are logged and never
// reach the caller.
type Async struct {
	submitter Submitter
	timeout   time.Duration
	wg        sync.WaitGroup
}

func NewAsync(submitter Submitter, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &Async{submitter: submitter, timeout: timeout}
}

// Submit starts the submission and returns at once.
func (a *Async) Submit(userID string, score int) {
	if a == nil || a.submitter == nil {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		log := logrus.WithFields(logrus.Fields{"user": userID, "score": score})
		if err := a.submitter.SubmitScore(ctx, userID, score); err != nil {
			log.WithError(err).Warn("highscore: submit failed")
			return
		}
		log.Info("highscore: score submitted")
	}()
}

// Wait blocks until every started submission has finished.
func (a *Async) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}
