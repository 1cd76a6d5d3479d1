package service

import (
	"context"
	"errors"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/contract"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/internal/websocket"
	"walkaudit-be/pkg/events"
	pkgNats "walkaudit-be/pkg/nats"
)

type IChatService interface {
	// Admit resolves the report's conversation for the user and authorizes
	// access, implementing the websocket connect gate.
	Admit(ctx context.Context, userId, reportId uint) (*entity.Chat, error)

	// Authorize re-checks access; also called for every inbound frame.
	Authorize(ctx context.Context, userId, chatId uint) error

	// Append persists one message. Delivery happens only after this returns.
	Append(ctx context.Context, chatId, userId uint, text, image *string) (*entity.ChatMessage, error)

	ResolveOrCreate(ctx context.Context, reportId, orgId uint) (*entity.Chat, error)
	GetOrCreate(ctx context.Context, userId uint, req *dto.GetOrCreateChatRequest) (*dto.ChatResponse, error)
	GetByReport(ctx context.Context, userId, reportId uint) (*dto.ChatResponse, error)
	SendMessage(ctx context.Context, userId uint, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error)
	History(ctx context.Context, userId, chatId uint) ([]*dto.ChatMessageResponse, error)
	HistoryByReport(ctx context.Context, userId, reportId uint) ([]*dto.ChatMessageResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
	dispatcher     *websocket.Dispatcher
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pkgNats.Publisher) *chatService {
	return &chatService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// AttachDispatcher wires the fan-out path in after construction. The
// dispatcher needs this service for authorization and persistence, so the
// two cannot reference each other at construction time.
func (s *chatService) AttachDispatcher(d *websocket.Dispatcher) {
	s.dispatcher = d
}

func (s *chatService) Admit(ctx context.Context, userId, reportId uint) (*entity.Chat, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsBlocked {
		return nil, serverutils.NewUnauthorized("unknown user")
	}

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.NewNotFound("report not found")
	}

	// The conversation is scoped to an organization. Organization members
	// talk through their own org; the report author joins the conversation
	// of whichever org the report belongs to.
	var orgId uint
	switch {
	case user.OrgId != nil:
		orgId = *user.OrgId
	case report.OrgId != nil:
		orgId = *report.OrgId
	default:
		return nil, serverutils.NewForbidden("report has no conversation yet")
	}

	chat, err := s.ResolveOrCreate(ctx, reportId, orgId)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(user, report, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) Authorize(ctx context.Context, userId, chatId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ById{Id: chatId})
	if err != nil {
		return err
	}
	if chat == nil {
		return serverutils.NewNotFound("chat not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return err
	}
	if user == nil || user.IsBlocked {
		return serverutils.NewUnauthorized("unknown user")
	}

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: chat.ReportId})
	if err != nil {
		return err
	}
	if report == nil {
		return serverutils.NewNotFound("report not found")
	}

	return s.authorize(user, report, chat)
}

// authorize applies the single access rule: same organization as the
// conversation, or author of the underlying report. Admins pass.
func (s *chatService) authorize(user *entity.User, report *entity.Report, chat *entity.Chat) error {
	if user.IsAdmin {
		return nil
	}
	if user.OrgId != nil && *user.OrgId == chat.OrgId {
		return nil
	}
	if report.UserId == user.Id {
		return nil
	}
	return serverutils.NewForbidden("no access to this chat")
}

func (s *chatService) ResolveOrCreate(ctx context.Context, reportId, orgId uint) (*entity.Chat, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.NewNotFound("report not found")
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByReportAndOrg{ReportId: reportId, OrgId: orgId})
	if err != nil {
		return nil, err
	}
	if chat != nil {
		return chat, nil
	}

	chat = &entity.Chat{
		ReportId: reportId,
		OrgId:    orgId,
	}
	err = uow.ChatRepository().Create(ctx, chat)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, contract.ErrDuplicateChat) {
		return nil, err
	}

	// Lost the creation race. The winner's row is the canonical one.
	chat, err = uow.ChatRepository().FindOne(ctx, specification.ByReportAndOrg{ReportId: reportId, OrgId: orgId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, serverutils.NewPersistence(contract.ErrDuplicateChat)
	}
	return chat, nil
}

func (s *chatService) Append(ctx context.Context, chatId, userId uint, text, image *string) (*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ById{Id: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, serverutils.NewNotFound("chat not found")
	}

	message := &entity.ChatMessage{
		ChatId:   chat.Id,
		ReportId: chat.ReportId,
		UserId:   userId,
		Text:     text,
		Image:    image,
	}
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, serverutils.NewPersistence(err)
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewChatMessagePosted(chat.Id, chat.ReportId, userId))
	}
	return message, nil
}

func (s *chatService) GetOrCreate(ctx context.Context, userId uint, req *dto.GetOrCreateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrgId == nil {
		return nil, serverutils.NewForbidden("organization membership required")
	}

	chat, err := s.ResolveOrCreate(ctx, req.ReportId, *user.OrgId)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat), nil
}

// GetByReport returns the caller's org conversation for a report without
// creating one. NotFound when no conversation exists yet.
func (s *chatService) GetByReport(ctx context.Context, userId, reportId uint) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrgId == nil {
		return nil, serverutils.NewForbidden("organization membership required")
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByReportAndOrg{ReportId: reportId, OrgId: *user.OrgId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, serverutils.NewNotFound("chat not found")
	}
	return toChatResponse(chat), nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uint, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error) {
	if err := s.Authorize(ctx, userId, req.ChatId); err != nil {
		return nil, err
	}

	message, err := s.Append(ctx, req.ChatId, userId, req.Text, req.Image)
	if err != nil {
		return nil, err
	}

	// Same fan-out as the websocket path, so live subscribers see HTTP
	// sends too.
	if s.dispatcher != nil {
		s.dispatcher.Broadcast(ctx, req.ChatId, message)
	}
	return toChatMessageResponse(message), nil
}

func (s *chatService) History(ctx context.Context, userId, chatId uint) ([]*dto.ChatMessageResponse, error) {
	if err := s.Authorize(ctx, userId, chatId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.Filter("chat_id", chatId),
		specification.OldestFirst{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatMessageResponse, len(messages))
	for i, message := range messages {
		result[i] = toChatMessageResponse(message)
	}
	return result, nil
}

// HistoryByReport serves the report-scoped history endpoint. The caller's
// conversation is resolved the same way as on connect; a report without a
// conversation yields an empty history rather than an error.
func (s *chatService) HistoryByReport(ctx context.Context, userId, reportId uint) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewUnauthorized("unknown user")
	}

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.NewNotFound("report not found")
	}

	var orgId uint
	switch {
	case user.OrgId != nil:
		orgId = *user.OrgId
	case report.OrgId != nil:
		orgId = *report.OrgId
	default:
		return []*dto.ChatMessageResponse{}, nil
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByReportAndOrg{ReportId: reportId, OrgId: orgId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return []*dto.ChatMessageResponse{}, nil
	}
	return s.History(ctx, userId, chat.Id)
}

func toChatResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:        chat.Id,
		ReportId:  chat.ReportId,
		OrgId:     chat.OrgId,
		CreatedAt: chat.CreatedAt,
	}
}

func toChatMessageResponse(message *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        message.Id,
		ChatId:    message.ChatId,
		Text:      message.Text,
		Image:     message.Image,
		SenderId:  message.UserId,
		CreatedAt: message.CreatedAt,
	}
}
