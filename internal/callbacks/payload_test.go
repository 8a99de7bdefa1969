package callbacks

import "testing"

func TestApprovalRoundTrip(t *testing.T) {
	data := EncodeApproval(ActionAccept, "T1")
	if data != "adm_acc_T1" {
		t.Fatalf("unexpected wire data: %q", data)
	}

	payload, err := ParseApproval(data)
	if err != nil {
		t.Fatalf("ParseApproval: %v", err)
	}
	if payload.Action != ActionAccept || payload.TemplateID != "T1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestPaymentRoundTrip(t *testing.T) {
	data := EncodePayment(ActionReject, "T9", 123456789)
	if data != "pay_rej_T9_123456789" {
		t.Fatalf("unexpected wire data: %q", data)
	}

	payload, err := ParsePayment(data)
	if err != nil {
		t.Fatalf("ParsePayment: %v", err)
	}
	if payload.Action != ActionReject || payload.TemplateID != "T9" || payload.BuyerChatID != 123456789 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseApprovalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "wrong domain", data: "pay_acc_T1"},
		{name: "unknown action", data: "adm_maybe_T1"},
		{name: "missing id", data: "adm_acc_"},
		{name: "too many parts", data: "adm_acc_T1_77"},
		{name: "not delimited", data: "admaccT1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseApproval(tt.data); err == nil {
				t.Fatalf("expected error for %q", tt.data)
			}
		})
	}
}

func TestParsePaymentRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "wrong domain", data: "adm_acc_T1_42"},
		{name: "unknown action", data: "pay_hold_T1_42"},
		{name: "missing id", data: "pay_acc__42"},
		{name: "missing chat id", data: "pay_acc_T1"},
		{name: "non-numeric chat id", data: "pay_acc_T1_abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePayment(tt.data); err == nil {
				t.Fatalf("expected error for %q", tt.data)
			}
		})
	}
}
