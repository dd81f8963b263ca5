package domain

import (
	"time"
)

// EventType names a campaign lifecycle event.
type EventType string

const (
	EventCampaignCreated          EventType = "campaign.created"
	EventCampaignPurchased        EventType = "campaign.purchased"
	EventCampaignWithdrawn        EventType = "campaign.withdrawn"
	EventCampaignCancelled        EventType = "campaign.cancelled"
	EventCampaignDeadlineExtended EventType = "campaign.deadline_extended"
	EventCampaignManualTransfer   EventType = "campaign.manual_transfer"
	EventCampaignRefunded         EventType = "campaign.refunded"
	EventDistributionCreated      EventType = "distribution.created"
	EventDistributionClaimed      EventType = "distribution.claimed"
	EventCertificateTransferred   EventType = "certificate.transferred"
)

// Event is a record of a committed and settled campaign operation.
// ProjectAddress is the campaign address clients use to locate it.
type Event struct {
	ID             string          `json:"id"`
	Type           EventType       `json:"type"`
	ProjectAddress Identity        `json:"projectAddress"`
	Actor          Identity        `json:"actor,omitempty"`
	Party          Identity        `json:"party,omitempty"`
	Amount         uint64          `json:"amount,omitempty"`
	Certificates   []CertificateID `json:"certificates,omitempty"`
	Distribution   *int            `json:"distribution,omitempty"`
	Deadline       *time.Time      `json:"deadline,omitempty"`
	OccurredAt     time.Time       `json:"occurredAt"`
}
