package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateTicketSignature signs a registration for check-in QR codes.
func GenerateTicketSignature(registrationID, eventID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", registrationID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// BuildTicketPayload encodes the QR payload for a registration.
func BuildTicketPayload(registrationID, eventID, userID uuid.UUID, secretKey string) string {
	signature := GenerateTicketSignature(registrationID, eventID, userID, secretKey)
	return fmt.Sprintf("registration:%s;event:%s;user:%s;signature:%s",
		registrationID.String(),
		eventID.String(),
		userID.String(),
		signature,
	)
}

// ParseTicketPayload extracts the IDs from scanned QR data.
func ParseTicketPayload(payload string) (registrationID, eventID, userID uuid.UUID, err error) {
	parts := strings.Split(payload, ";")
	if len(parts) != 4 ||
		!strings.HasPrefix(parts[0], "registration:") ||
		!strings.HasPrefix(parts[1], "event:") ||
		!strings.HasPrefix(parts[2], "user:") ||
		!strings.HasPrefix(parts[3], "signature:") {
		return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid ticket data format")
	}

	registrationID, err = uuid.Parse(strings.TrimPrefix(parts[0], "registration:"))
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid registration ID format")
	}
	eventID, err = uuid.Parse(strings.TrimPrefix(parts[1], "event:"))
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid event ID format")
	}
	userID, err = uuid.Parse(strings.TrimPrefix(parts[2], "user:"))
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid user ID format")
	}
	return registrationID, eventID, userID, nil
}

// ValidateTicketSignature checks scanned QR data against the expected
// signature for the registration it claims to represent.
func ValidateTicketSignature(payload string, secretKey string) bool {
	registrationID, eventID, userID, err := ParseTicketPayload(payload)
	if err != nil {
		return false
	}

	parts := strings.Split(payload, ";")
	signature := strings.TrimPrefix(parts[3], "signature:")
	expected := GenerateTicketSignature(registrationID, eventID, userID, secretKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}
