// Package pipeline provides the channel stages the compute pass is built
// from: a generator that streams a batch, a worker pool that fans the batch
// out over independent workers, and a sink that drains the results.
package pipeline

import (
	"context"
	"errors"
	"sync"
)

// Event is used as the type for input and output channels.
type Event interface{}

type (
	// eachFunc is called for each event of the input channel
	eachFunc func(val interface{}) error
	// generateFunc is used in Generate to produce values for the output channel
	generateFunc func() (interface{}, error)
	// workerFunc consumes an item of the input channel
	// and publishes the result to the output channel
	workerFunc func(ctx context.Context, item interface{}, outc chan<- Event) error
)

// Generate converts the output of a generateFunc to a channel of Event.
// The only way to close the output channel is to return an error from the
// generateFunc; a nil value is skipped and not put on the channel.
func Generate(ctx context.Context, fn generateFunc) (<-chan Event, <-chan error) {
	outc := make(chan Event)
	errc := make(chan error, 1)
	go func() {
		defer func() {
			close(outc)
			close(errc)
		}()
		for {
			select {
			case <-ctx.Done():
				errc <- errors.New("generate canceled")
				return
			default:
			}
			res, err := fn()
			switch {
			case err != nil:
				errc <- err
				return
			case res != nil: // only non nil res is put to out channel
				outc <- res
			}
		}
	}()

	return outc, errc
}

// Sink runs an eachFunc on each event. It is the final stage of the
// pipeline as it does not produce any channel.
func Sink(ctx context.Context, ch <-chan Event, fn eachFunc) error {
	for r := range ch {
		select {
		case <-ctx.Done():
			return errors.New("sink canceled")
		default:
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WorkerPool fans out the input channel to N workers which all publish on
// the output channel. When a worker returns an error the pool publishes it
// and keeps the worker alive for the next item; deciding whether the error
// is fatal is up to the consumer of the error channel.
func WorkerPool(ctx context.Context, concurrency int, inc <-chan Event, worker workerFunc) (<-chan Event, <-chan error) {
	var wg sync.WaitGroup
	outc := make(chan Event)
	errc := make(chan error, concurrency)

	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for item := range inc {
				err := worker(ctx, item, outc)
				if err != nil {
					errc <- err
					// worker could not work out the current item
					// skip the current item but keep the worker
					continue
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outc)
		close(errc)
	}()

	return outc, errc
}

// MergeErrors merges all input error channels into one output channel.
func MergeErrors(ctx context.Context, errs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	outc := make(chan error, len(errs))
	output := func(errc <-chan error) {
		defer wg.Done()
		for e := range errc {
			select {
			case outc <- e:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(len(errs))
	for _, errc := range errs {
		go output(errc)
	}

	go func() {
		wg.Wait()
		close(outc)
	}()

	return outc
}
