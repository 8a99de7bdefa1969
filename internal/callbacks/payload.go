// Package callbacks encodes and decodes inline-button callback data.
//
// Wire format, delimited by underscore:
//
//	adm_{acc|rej}_{templateID}
//	pay_{acc|rej}_{templateID}_{buyerChatID}
//
// Template ids must not contain the delimiter; decoding splits positionally
// and rejects anything that does not match exactly.
package callbacks

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DomainApproval = "adm"
	DomainPayment  = "pay"

	ActionAccept = "acc"
	ActionReject = "rej"
)

type ApprovalPayload struct {
	Action     string
	TemplateID string
}

type PaymentPayload struct {
	Action      string
	TemplateID  string
	BuyerChatID int64
}

func EncodeApproval(action, templateID string) string {
	return strings.Join([]string{DomainApproval, action, templateID}, "_")
}

func EncodePayment(action, templateID string, buyerChatID int64) string {
	return strings.Join([]string{DomainPayment, action, templateID, strconv.FormatInt(buyerChatID, 10)}, "_")
}

func ParseApproval(data string) (ApprovalPayload, error) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 || parts[0] != DomainApproval {
		return ApprovalPayload{}, fmt.Errorf("invalid approval callback data: %q", data)
	}
	if parts[1] != ActionAccept && parts[1] != ActionReject {
		return ApprovalPayload{}, fmt.Errorf("invalid approval action: %q", data)
	}
	if parts[2] == "" {
		return ApprovalPayload{}, fmt.Errorf("invalid approval callback data: %q", data)
	}
	return ApprovalPayload{Action: parts[1], TemplateID: parts[2]}, nil
}

func ParsePayment(data string) (PaymentPayload, error) {
	parts := strings.Split(data, "_")
	if len(parts) != 4 || parts[0] != DomainPayment {
		return PaymentPayload{}, fmt.Errorf("invalid payment callback data: %q", data)
	}
	if parts[1] != ActionAccept && parts[1] != ActionReject {
		return PaymentPayload{}, fmt.Errorf("invalid payment action: %q", data)
	}
	if parts[2] == "" {
		return PaymentPayload{}, fmt.Errorf("invalid payment callback data: %q", data)
	}
	chatID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return PaymentPayload{}, fmt.Errorf("invalid payment buyer chat id: %q", data)
	}
	return PaymentPayload{Action: parts[1], TemplateID: parts[2], BuyerChatID: chatID}, nil
}
