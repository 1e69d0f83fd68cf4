package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/service/brief"
)

var _ briefService = &briefServiceMock{}

type briefServiceMock struct {
	CreateBriefFunc        func(ctx context.Context, input brief.CreateBriefInput) (*brief.BriefDetail, error)
	GetBriefFunc           func(ctx context.Context, briefID uuid.UUID) (*brief.BriefDetail, error)
	ListBriefsFunc         func(ctx context.Context, input brief.ListBriefsInput) (*brief.Page[brief.BriefSummary], error)
	UpdateBriefContentFunc func(ctx context.Context, input brief.UpdateBriefInput) (*brief.BriefDetail, error)
	ChangeBriefStatusFunc  func(ctx context.Context, input brief.ChangeStatusInput) (*brief.StatusResult, error)
	DeleteBriefFunc        func(ctx context.Context, briefID uuid.UUID) error
	GetBriefHistoryFunc    func(ctx context.Context, briefID uuid.UUID, limit int) ([]brief.HistoryEntry, error)
	ShareBriefFunc         func(ctx context.Context, input brief.ShareInput) (*brief.RecipientRecord, error)
	RevokeRecipientFunc    func(ctx context.Context, briefID uuid.UUID, recipientRecordID uuid.UUID) error
	ListRecipientsFunc     func(ctx context.Context, briefID uuid.UUID) ([]brief.RecipientRecord, error)
	AddCommentFunc         func(ctx context.Context, input brief.AddCommentInput) (*brief.CommentRecord, error)
	DeleteCommentFunc      func(ctx context.Context, commentID uuid.UUID) error
	ListCommentsFunc       func(ctx context.Context, briefID uuid.UUID) ([]*brief.CommentRecord, error)

	calls struct {
		CreateBrief []struct {
			Ctx   context.Context
			Input brief.CreateBriefInput
		}
		GetBrief []struct {
			Ctx     context.Context
			BriefID uuid.UUID
		}
		ListBriefs []struct {
			Ctx   context.Context
			Input brief.ListBriefsInput
		}
		UpdateBriefContent []struct {
			Ctx   context.Context
			Input brief.UpdateBriefInput
		}
		ChangeBriefStatus []struct {
			Ctx   context.Context
			Input brief.ChangeStatusInput
		}
		DeleteBrief []struct {
			Ctx     context.Context
			BriefID uuid.UUID
		}
		GetBriefHistory []struct {
			Ctx     context.Context
			BriefID uuid.UUID
			Limit   int
		}
		ShareBrief []struct {
			Ctx   context.Context
			Input brief.ShareInput
		}
		RevokeRecipient []struct {
			Ctx               context.Context
			BriefID           uuid.UUID
			RecipientRecordID uuid.UUID
		}
		ListRecipients []struct {
			Ctx     context.Context
			BriefID uuid.UUID
		}
		AddComment []struct {
			Ctx   context.Context
			Input brief.AddCommentInput
		}
		DeleteComment []struct {
			Ctx       context.Context
			CommentID uuid.UUID
		}
		ListComments []struct {
			Ctx     context.Context
			BriefID uuid.UUID
		}
	}
	lockCreateBrief        sync.RWMutex
	lockGetBrief           sync.RWMutex
	lockListBriefs         sync.RWMutex
	lockUpdateBriefContent sync.RWMutex
	lockChangeBriefStatus  sync.RWMutex
	lockDeleteBrief        sync.RWMutex
	lockGetBriefHistory    sync.RWMutex
	lockShareBrief         sync.RWMutex
	lockRevokeRecipient    sync.RWMutex
	lockListRecipients     sync.RWMutex
	lockAddComment         sync.RWMutex
	lockDeleteComment      sync.RWMutex
	lockListComments       sync.RWMutex
}

func (mock *briefServiceMock) CreateBrief(ctx context.Context, input brief.CreateBriefInput) (*brief.BriefDetail, error) {
	if mock.CreateBriefFunc == nil {
		panic("briefServiceMock.CreateBriefFunc: method is nil but briefService.CreateBrief was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input brief.CreateBriefInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateBrief.Lock()
	mock.calls.CreateBrief = append(mock.calls.CreateBrief, callInfo)
	mock.lockCreateBrief.Unlock()
	return mock.CreateBriefFunc(ctx, input)
}

func (mock *briefServiceMock) CreateBriefCalls() []struct {
	Ctx   context.Context
	Input brief.CreateBriefInput
} {
	mock.lockCreateBrief.RLock()
	calls := mock.calls.CreateBrief
	mock.lockCreateBrief.RUnlock()
	return calls
}

func (mock *briefServiceMock) GetBrief(ctx context.Context, briefID uuid.UUID) (*brief.BriefDetail, error) {
	if mock.GetBriefFunc == nil {
		panic("briefServiceMock.GetBriefFunc: method is nil but briefService.GetBrief was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BriefID uuid.UUID
	}{Ctx: ctx, BriefID: briefID}
	mock.lockGetBrief.Lock()
	mock.calls.GetBrief = append(mock.calls.GetBrief, callInfo)
	mock.lockGetBrief.Unlock()
	return mock.GetBriefFunc(ctx, briefID)
}

func (mock *briefServiceMock) GetBriefCalls() []struct {
	Ctx     context.Context
	BriefID uuid.UUID
} {
	mock.lockGetBrief.RLock()
	calls := mock.calls.GetBrief
	mock.lockGetBrief.RUnlock()
	return calls
}

func (mock *briefServiceMock) ListBriefs(ctx context.Context, input brief.ListBriefsInput) (*brief.Page[brief.BriefSummary], error) {
	if mock.ListBriefsFunc == nil {
		panic("briefServiceMock.ListBriefsFunc: method is nil but briefService.ListBriefs was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input brief.ListBriefsInput
	}{Ctx: ctx, Input: input}
	mock.lockListBriefs.Lock()
	mock.calls.ListBriefs = append(mock.calls.ListBriefs, callInfo)
	mock.lockListBriefs.Unlock()
	return mock.ListBriefsFunc(ctx, input)
}

func (mock *briefServiceMock) ListBriefsCalls() []struct {
	Ctx   context.Context
	Input brief.ListBriefsInput
} {
	mock.lockListBriefs.RLock()
	calls := mock.calls.ListBriefs
	mock.lockListBriefs.RUnlock()
	return calls
}

func (mock *briefServiceMock) UpdateBriefContent(ctx context.Context, input brief.UpdateBriefInput) (*brief.BriefDetail, error) {
	if mock.UpdateBriefContentFunc == nil {
		panic("briefServiceMock.UpdateBriefContentFunc: method is nil but briefService.UpdateBriefContent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input brief.UpdateBriefInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateBriefContent.Lock()
	mock.calls.UpdateBriefContent = append(mock.calls.UpdateBriefContent, callInfo)
	mock.lockUpdateBriefContent.Unlock()
	return mock.UpdateBriefContentFunc(ctx, input)
}

func (mock *briefServiceMock) UpdateBriefContentCalls() []struct {
	Ctx   context.Context
	Input brief.UpdateBriefInput
} {
	mock.lockUpdateBriefContent.RLock()
	calls := mock.calls.UpdateBriefContent
	mock.lockUpdateBriefContent.RUnlock()
	return calls
}

func (mock *briefServiceMock) ChangeBriefStatus(ctx context.Context, input brief.ChangeStatusInput) (*brief.StatusResult, error) {
	if mock.ChangeBriefStatusFunc == nil {
		panic("briefServiceMock.ChangeBriefStatusFunc: method is nil but briefService.ChangeBriefStatus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input brief.ChangeStatusInput
	}{Ctx: ctx, Input: input}
	mock.lockChangeBriefStatus.Lock()
	mock.calls.ChangeBriefStatus = append(mock.calls.ChangeBriefStatus, callInfo)
	mock.lockChangeBriefStatus.Unlock()
	return mock.ChangeBriefStatusFunc(ctx, input)
}

func (mock *briefServiceMock) ChangeBriefStatusCalls() []struct {
	Ctx   context.Context
	Input brief.ChangeStatusInput
} {
	mock.lockChangeBriefStatus.RLock()
	calls := mock.calls.ChangeBriefStatus
	mock.lockChangeBriefStatus.RUnlock()
	return calls
}

func (mock *briefServiceMock) DeleteBrief(ctx context.Context, briefID uuid.UUID) error {
	if mock.DeleteBriefFunc == nil {
		panic("briefServiceMock.DeleteBriefFunc: method is nil but briefService.DeleteBrief was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BriefID uuid.UUID
	}{Ctx: ctx, BriefID: briefID}
	mock.lockDeleteBrief.Lock()
	mock.calls.DeleteBrief = append(mock.calls.DeleteBrief, callInfo)
	mock.lockDeleteBrief.Unlock()
	return mock.DeleteBriefFunc(ctx, briefID)
}

func (mock *briefServiceMock) DeleteBriefCalls() []struct {
	Ctx     context.Context
	BriefID uuid.UUID
} {
	mock.lockDeleteBrief.RLock()
	calls := mock.calls.DeleteBrief
	mock.lockDeleteBrief.RUnlock()
	return calls
}

func (mock *briefServiceMock) GetBriefHistory(ctx context.Context, briefID uuid.UUID, limit int) ([]brief.HistoryEntry, error) {
	if mock.GetBriefHistoryFunc == nil {
		panic("briefServiceMock.GetBriefHistoryFunc: method is nil but briefService.GetBriefHistory was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BriefID uuid.UUID
		Limit   int
	}{Ctx: ctx, BriefID: briefID, Limit: limit}
	mock.lockGetBriefHistory.Lock()
	mock.calls.GetBriefHistory = append(mock.calls.GetBriefHistory, callInfo)
	mock.lockGetBriefHistory.Unlock()
	return mock.GetBriefHistoryFunc(ctx, briefID, limit)
}

func (mock *briefServiceMock) GetBriefHistoryCalls() []struct {
	Ctx     context.Context
	BriefID uuid.UUID
	Limit   int
} {
	mock.lockGetBriefHistory.RLock()
	calls := mock.calls.GetBriefHistory
	mock.lockGetBriefHistory.RUnlock()
	return calls
}

func (mock *briefServiceMock) ShareBrief(ctx context.Context, input brief.ShareInput) (*brief.RecipientRecord, error) {
	if mock.ShareBriefFunc == nil {
		panic("briefServiceMock.ShareBriefFunc: method is nil but briefService.ShareBrief was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input brief.ShareInput
	}{Ctx: ctx, Input: input}
	mock.lockShareBrief.Lock()
	mock.calls.ShareBrief = append(mock.calls.ShareBrief, callInfo)
	mock.lockShareBrief.Unlock()
	return mock.ShareBriefFunc(ctx, input)
}

func (mock *briefServiceMock) ShareBriefCalls() []struct {
	Ctx   context.Context
	Input brief.ShareInput
} {
	mock.lockShareBrief.RLock()
	calls := mock.calls.ShareBrief
	mock.lockShareBrief.RUnlock()
	return calls
}

func (mock *briefServiceMock) RevokeRecipient(ctx context.Context, briefID uuid.UUID, recipientRecordID uuid.UUID) error {
	if mock.RevokeRecipientFunc == nil {
		panic("briefServiceMock.RevokeRecipientFunc: method is nil but briefService.RevokeRecipient was just called")
	}
	callInfo := struct {
		Ctx               context.Context
		BriefID           uuid.UUID
		RecipientRecordID uuid.UUID
	}{Ctx: ctx, BriefID: briefID, RecipientRecordID: recipientRecordID}
	mock.lockRevokeRecipient.Lock()
	mock.calls.RevokeRecipient = append(mock.calls.RevokeRecipient, callInfo)
	mock.lockRevokeRecipient.Unlock()
	return mock.RevokeRecipientFunc(ctx, briefID, recipientRecordID)
}

func (mock *briefServiceMock) RevokeRecipientCalls() []struct {
	Ctx               context.Context
	BriefID           uuid.UUID
	RecipientRecordID uuid.UUID
} {
	mock.lockRevokeRecipient.RLock()
	calls := mock.calls.RevokeRecipient
	mock.lockRevokeRecipient.RUnlock()
	return calls
}

func (mock *briefServiceMock) ListRecipients(ctx context.Context, briefID uuid.UUID) ([]brief.RecipientRecord, error) {
	if mock.ListRecipientsFunc == nil {
		panic("briefServiceMock.ListRecipientsFunc: method is nil but briefService.ListRecipients was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BriefID uuid.UUID
	}{Ctx: ctx, BriefID: briefID}
	mock.lockListRecipients.Lock()
	mock.calls.ListRecipients = append(mock.calls.ListRecipients, callInfo)
	mock.lockListRecipients.Unlock()
	return mock.ListRecipientsFunc(ctx, briefID)
}

func (mock *briefServiceMock) ListRecipientsCalls() []struct {
	Ctx     context.Context
	BriefID uuid.UUID
} {
	mock.lockListRecipients.RLock()
	calls := mock.calls.ListRecipients
	mock.lockListRecipients.RUnlock()
	return calls
}

func (mock *briefServiceMock) AddComment(ctx context.Context, input brief.AddCommentInput) (*brief.CommentRecord, error) {
	if mock.AddCommentFunc == nil {
		panic("briefServiceMock.AddCommentFunc: method is nil but briefService.AddComment was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input brief.AddCommentInput
	}{Ctx: ctx, Input: input}
	mock.lockAddComment.Lock()
	mock.calls.AddComment = append(mock.calls.AddComment, callInfo)
	mock.lockAddComment.Unlock()
	return mock.AddCommentFunc(ctx, input)
}

func (mock *briefServiceMock) AddCommentCalls() []struct {
	Ctx   context.Context
	Input brief.AddCommentInput
} {
	mock.lockAddComment.RLock()
	calls := mock.calls.AddComment
	mock.lockAddComment.RUnlock()
	return calls
}

func (mock *briefServiceMock) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	if mock.DeleteCommentFunc == nil {
		panic("briefServiceMock.DeleteCommentFunc: method is nil but briefService.DeleteComment was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CommentID uuid.UUID
	}{Ctx: ctx, CommentID: commentID}
	mock.lockDeleteComment.Lock()
	mock.calls.DeleteComment = append(mock.calls.DeleteComment, callInfo)
	mock.lockDeleteComment.Unlock()
	return mock.DeleteCommentFunc(ctx, commentID)
}

func (mock *briefServiceMock) DeleteCommentCalls() []struct {
	Ctx       context.Context
	CommentID uuid.UUID
} {
	mock.lockDeleteComment.RLock()
	calls := mock.calls.DeleteComment
	mock.lockDeleteComment.RUnlock()
	return calls
}

func (mock *briefServiceMock) ListComments(ctx context.Context, briefID uuid.UUID) ([]*brief.CommentRecord, error) {
	if mock.ListCommentsFunc == nil {
		panic("briefServiceMock.ListCommentsFunc: method is nil but briefService.ListComments was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BriefID uuid.UUID
	}{Ctx: ctx, BriefID: briefID}
	mock.lockListComments.Lock()
	mock.calls.ListComments = append(mock.calls.ListComments, callInfo)
	mock.lockListComments.Unlock()
	return mock.ListCommentsFunc(ctx, briefID)
}

func (mock *briefServiceMock) ListCommentsCalls() []struct {
	Ctx     context.Context
	BriefID uuid.UUID
} {
	mock.lockListComments.RLock()
	calls := mock.calls.ListComments
	mock.lockListComments.RUnlock()
	return calls
}
