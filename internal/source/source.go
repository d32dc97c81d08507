package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"thumbline/internal/domain"
	"thumbline/internal/eventbus"
	"thumbline/internal/logging"
)

// batchSize is how many items are published per batch event while loading.
const batchSize = 500

// maxLineBytes caps a single scanned line; longer lines are split by the
// scanner buffer rather than aborting the load.
const maxLineBytes = 1024 * 1024

// Service loads items into the application, either from a line-oriented
// file or generated synthetically. Items stream onto the bus in batches so
// the UI can render before the full collection is in memory.
type Service interface {
	StartLoad(ctx context.Context, path string) error
	StartGenerate(ctx context.Context, count int) error
	StopLoad()
}

// service is the concrete implementation
type service struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isLoading  bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates a new item source service
func NewService(bus eventbus.EventBus) Service {
	return &service{bus: bus}
}

// StartLoad reads items from a file, one per line, in the background.
func (s *service) StartLoad(ctx context.Context, path string) error {
	loadCtx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	s.bus.Publish(eventbus.LoadStartedEvent{Source: path})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		found := 0
		defer s.finish(&found)

		logger := logging.Component("source")

		f, err := os.Open(path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("failed to open source file")
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("cannot open %s", path),
				Err:     err,
			})
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		batch := make([]domain.Item, 0, batchSize)
		for scanner.Scan() {
			select {
			case <-loadCtx.Done():
				return
			default:
			}

			batch = append(batch, domain.Item{Index: found, Text: scanner.Text()})
			found++

			if len(batch) == batchSize {
				s.bus.Publish(eventbus.ItemBatchLoadedEvent{Items: batch})
				batch = make([]domain.Item, 0, batchSize)
			}
		}
		if len(batch) > 0 {
			s.bus.Publish(eventbus.ItemBatchLoadedEvent{Items: batch})
		}

		if err := scanner.Err(); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("read error")
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("error reading %s", path),
				Err:     err,
			})
		}
	}()

	return nil
}

// StartGenerate produces a synthetic collection of count items, useful for
// demos and for exercising the indicator against very long lists.
func (s *service) StartGenerate(ctx context.Context, count int) error {
	loadCtx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	s.bus.Publish(eventbus.LoadStartedEvent{Source: "generated"})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		found := 0
		defer s.finish(&found)

		batch := make([]domain.Item, 0, batchSize)
		for i := 0; i < count; i++ {
			select {
			case <-loadCtx.Done():
				return
			default:
			}

			batch = append(batch, domain.Item{
				Index: i,
				Text:  fmt.Sprintf("item %06d", i),
			})
			found++

			if len(batch) == batchSize {
				s.bus.Publish(eventbus.ItemBatchLoadedEvent{Items: batch})
				batch = make([]domain.Item, 0, batchSize)
			}
		}
		if len(batch) > 0 {
			s.bus.Publish(eventbus.ItemBatchLoadedEvent{Items: batch})
		}
	}()

	return nil
}

// StopLoad cancels any in-flight load.
func (s *service) StopLoad() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// begin marks the service as loading and returns a cancellable context.
func (s *service) begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isLoading {
		return nil, fmt.Errorf("load already in progress")
	}
	s.isLoading = true

	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	return loadCtx, nil
}

// finish clears the loading state and publishes completion.
func (s *service) finish(found *int) {
	s.mu.Lock()
	s.isLoading = false
	s.cancelFunc = nil
	s.mu.Unlock()

	s.bus.Publish(eventbus.LoadCompletedEvent{ItemsFound: *found})
}
