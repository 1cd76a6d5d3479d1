package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/pkg/geocode"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs the report enrichment pipeline: reports submitted
// without an address are reverse-geocoded, then re-matched against city
// organization areas.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	geocoder   *geocode.Client
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	geocoder *geocode.Client,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishReportEnrichmentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal enrichment message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: payload.ReportId})
	if err != nil {
		log.Printf("[ERROR] Failed to load report %d: %v", payload.ReportId, err)
		msg.Nack()
		return
	}
	if report == nil {
		// Deleted before we got to it.
		msg.Ack()
		return
	}

	changed := false

	if report.Address == nil && cs.geocoder != nil {
		results, err := cs.geocoder.Reverse(ctx, report.Lat, report.Lng)
		if err != nil {
			log.Printf("[WARN] Reverse geocode failed for report %d: %v", report.Id, err)
		} else if len(results) > 0 {
			address := results[0].Address
			report.Address = &address
			changed = true
		}
	}

	if report.OrgId == nil && report.Address != nil {
		org, err := matchCityOrganization(ctx, uow, *report.Address)
		if err != nil {
			log.Printf("[ERROR] Org matching failed for report %d: %v", report.Id, err)
			msg.Nack()
			return
		}
		if org != nil {
			report.OrgId = &org.Id
			changed = true
		}
	}

	if changed {
		if err := uow.ReportRepository().Update(ctx, report); err != nil {
			log.Printf("[ERROR] Failed to update report %d: %v", report.Id, err)
			msg.Nack()
			return
		}
		log.Printf("[INFO] Enriched report %d (org=%s)", report.Id, formatOrgRef(report.OrgId))
	}

	msg.Ack()
}

func formatOrgRef(orgId *uint) string {
	if orgId == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *orgId)
}
