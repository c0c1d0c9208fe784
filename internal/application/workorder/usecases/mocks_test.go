package usecases

import (
	"context"
	"fmt"
	"io"
	"sync"

	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/logger"
)

type mockWorkOrderRepository struct {
	CreateFunc   func(ctx context.Context, wo *workorder.WorkOrder) error
	FindByIDFunc func(ctx context.Context, id uint) (*workorder.WorkOrder, error)
	ListFunc     func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error)
	UpdateFunc   func(ctx context.Context, wo *workorder.WorkOrder, loadedVersion int) error
}

func (m *mockWorkOrderRepository) Create(ctx context.Context, wo *workorder.WorkOrder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, wo)
	}
	if wo.ID() == 0 {
		return wo.SetID(1)
	}
	return nil
}

func (m *mockWorkOrderRepository) FindByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockWorkOrderRepository) List(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder, loadedVersion int) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, wo, loadedVersion)
	}
	return nil
}

type mockPhotoRepository struct {
	CreateFunc            func(ctx context.Context, photo *workorder.Photo) error
	FindByIDFunc          func(ctx context.Context, id uint) (*workorder.Photo, error)
	ListByWorkOrderIDFunc func(ctx context.Context, workOrderID uint) ([]*workorder.Photo, error)
	DeleteFunc            func(ctx context.Context, id uint) (bool, error)
}

func (m *mockPhotoRepository) Create(ctx context.Context, photo *workorder.Photo) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, photo)
	}
	if photo.ID() == 0 {
		return photo.SetID(1)
	}
	return nil
}

func (m *mockPhotoRepository) FindByID(ctx context.Context, id uint) (*workorder.Photo, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPhotoRepository) ListByWorkOrderID(ctx context.Context, workOrderID uint) ([]*workorder.Photo, error) {
	if m.ListByWorkOrderIDFunc != nil {
		return m.ListByWorkOrderIDFunc(ctx, workOrderID)
	}
	return nil, nil
}

func (m *mockPhotoRepository) Delete(ctx context.Context, id uint) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

type mockCommentRepository struct {
	CreateFunc            func(ctx context.Context, comment *workorder.Comment) error
	ListByWorkOrderIDFunc func(ctx context.Context, workOrderID uint, includeInternal bool) ([]*workorder.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *workorder.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	if comment.ID() == 0 {
		return comment.SetID(1)
	}
	return nil
}

func (m *mockCommentRepository) ListByWorkOrderID(ctx context.Context, workOrderID uint, includeInternal bool) ([]*workorder.Comment, error) {
	if m.ListByWorkOrderIDFunc != nil {
		return m.ListByWorkOrderIDFunc(ctx, workOrderID, includeInternal)
	}
	return nil, nil
}

type mockHistoryRepository struct {
	mu      sync.Mutex
	Saved   []workorder.HistoryEntry
	ListFnc func(ctx context.Context, workOrderID uint) ([]workorder.HistoryEntry, error)
	FailOn  error
}

func (m *mockHistoryRepository) CreateBatch(ctx context.Context, entries []workorder.HistoryEntry) error {
	if m.FailOn != nil {
		return m.FailOn
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, entries...)
	return nil
}

func (m *mockHistoryRepository) ListByWorkOrderID(ctx context.Context, workOrderID uint) ([]workorder.HistoryEntry, error) {
	if m.ListFnc != nil {
		return m.ListFnc(ctx, workOrderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saved, nil
}

// mockTxManager runs the function inline; errors roll nothing back because
// the mocks have no transactional state to undo.
type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockPublisher struct {
	mu        sync.Mutex
	Published []events.DomainEvent
	Err       error
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	return m.PublishAll([]events.DomainEvent{event})
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, evts...)
	return nil
}

type mockFileStorage struct {
	SaveFunc   func(reader io.Reader, filename, prefix string) (string, error)
	DeleteFunc func(path string) error
	Saved      []string
	Deleted    []string
}

func (m *mockFileStorage) Save(reader io.Reader, filename, prefix string) (string, error) {
	if m.SaveFunc != nil {
		path, err := m.SaveFunc(reader, filename, prefix)
		if err == nil {
			m.Saved = append(m.Saved, path)
		}
		return path, err
	}
	path := fmt.Sprintf("%s/%s", prefix, filename)
	m.Saved = append(m.Saved, path)
	return path, nil
}

func (m *mockFileStorage) Delete(path string) error {
	m.Deleted = append(m.Deleted, path)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(path)
	}
	return nil
}

func (m *mockFileStorage) URLFor(path string) string {
	return "/uploads/" + path
}

type mockMarkdownService struct{}

func (m *mockMarkdownService) ToHTML(markdown string) (string, error)  { return markdown, nil }
func (m *mockMarkdownService) Sanitize(html string) string             { return html }
func (m *mockMarkdownService) ToHTMLSanitized(md string) (string, error) {
	return "<p>" + md + "</p>", nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                  {}
func (m *mockLogger) Info(msg string, args ...any)                   {}
func (m *mockLogger) Warn(msg string, args ...any)                   {}
func (m *mockLogger) Error(msg string, args ...any)                  {}
func (m *mockLogger) With(args ...any) logger.Interface              { return m }
func (m *mockLogger) Named(name string) logger.Interface             { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
