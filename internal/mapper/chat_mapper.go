package mapper

import (
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		ReportId:  c.ReportId,
		OrgId:     c.OrgId,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		ReportId:  c.ReportId,
		OrgId:     c.OrgId,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		ReportId:  msg.ReportId,
		UserId:    msg.UserId,
		Text:      msg.Text,
		Image:     msg.Image,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		ReportId:  msg.ReportId,
		UserId:    msg.UserId,
		Text:      msg.Text,
		Image:     msg.Image,
		CreatedAt: msg.CreatedAt,
	}
}
