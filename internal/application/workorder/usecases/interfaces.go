package usecases

import (
	"context"
	"io"

	"quarters/internal/application/workorder/dto"
)

// FileStorage abstracts blob storage for photo attachments. Save streams the
// already-validated content and returns the storage path recorded on the
// photo row; Delete is best-effort cleanup of that path.
type FileStorage interface {
	Save(reader io.Reader, filename, prefix string) (string, error)
	Delete(path string) error
	URLFor(path string) string
}

type CreateWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd CreateWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type GetWorkOrderExecutor interface {
	Execute(ctx context.Context, query GetWorkOrderQuery) (*GetWorkOrderResult, error)
}

type ListWorkOrdersExecutor interface {
	Execute(ctx context.Context, query ListWorkOrdersQuery) (*ListWorkOrdersResult, error)
}

type UpdateWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd UpdateWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type TriageWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd TriageWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type ApproveQuoteExecutor interface {
	Execute(ctx context.Context, cmd ApproveQuoteCommand) (*dto.WorkOrderDTO, error)
}

type RejectQuoteExecutor interface {
	Execute(ctx context.Context, cmd RejectQuoteCommand) (*dto.WorkOrderDTO, error)
}

type RejectWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd RejectWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type StartWorkExecutor interface {
	Execute(ctx context.Context, cmd StartWorkCommand) (*dto.WorkOrderDTO, error)
}

type CompleteWorkExecutor interface {
	Execute(ctx context.Context, cmd CompleteWorkCommand) (*dto.WorkOrderDTO, error)
}

type SignOffWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd SignOffWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type AttachPhotoExecutor interface {
	Execute(ctx context.Context, cmd AttachPhotoCommand) (*dto.PhotoDTO, error)
}

type DetachPhotoExecutor interface {
	Execute(ctx context.Context, cmd DetachPhotoCommand) error
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

type ListCommentsExecutor interface {
	Execute(ctx context.Context, query ListCommentsQuery) ([]*dto.CommentDTO, error)
}

type ListHistoryExecutor interface {
	Execute(ctx context.Context, query ListHistoryQuery) ([]*dto.HistoryEntryDTO, error)
}
