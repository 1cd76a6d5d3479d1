package service

import (
	"context"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
)

type IFeedbackService interface {
	Create(ctx context.Context, userId uint, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	ListOwn(ctx context.Context, userId uint) ([]*dto.FeedbackResponse, error)
	ListAll(ctx context.Context) ([]*dto.FeedbackResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory) IFeedbackService {
	return &feedbackService{uowFactory: uowFactory}
}

func (s *feedbackService) Create(ctx context.Context, userId uint, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback := &entity.Feedback{
		UserId:  userId,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, err
	}
	return toFeedbackResponse(feedback), nil
}

func (s *feedbackService) ListOwn(ctx context.Context, userId uint) ([]*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.FeedbackRepository().FindAll(ctx,
		specification.Filter("user_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return mapFeedback(items), nil
}

func (s *feedbackService) ListAll(ctx context.Context) ([]*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.FeedbackRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return mapFeedback(items), nil
}

func mapFeedback(items []*entity.Feedback) []*dto.FeedbackResponse {
	result := make([]*dto.FeedbackResponse, len(items))
	for i, item := range items {
		result[i] = toFeedbackResponse(item)
	}
	return result
}

func toFeedbackResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		Id:        feedback.Id,
		UserId:    feedback.UserId,
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		CreatedAt: feedback.CreatedAt,
	}
}
