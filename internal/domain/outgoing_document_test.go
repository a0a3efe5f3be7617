package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutgoingDocumentIsFinalized(t *testing.T) {
	finalized := map[OutgoingDocumentStatus]bool{
		OutgoingStatusDraft:    false,
		OutgoingStatusReview:   false,
		OutgoingStatusApproved: true,
		OutgoingStatusSent:     true,
		OutgoingStatusRejected: false,
	}

	for status, want := range finalized {
		doc := &OutgoingDocument{Status: status}
		require.Equal(t, want, doc.IsFinalized(), "trạng thái %s", status)
	}
}
