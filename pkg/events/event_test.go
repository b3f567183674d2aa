package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := BaseEvent{
		Type:       TypeDocumentProcessed,
		Data:       map[string]interface{}{"filename": "a.pdf", "status": "success"},
		OccurredAt: at,
	}

	raw, err := Marshal(evt)
	require.NoError(t, err)

	got, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeDocumentProcessed, got.EventType())
	assert.Equal(t, "a.pdf", got.Payload()["filename"])
	assert.True(t, at.Equal(got.Timestamp()))
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"data":{}}`))
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.document.exported", Subject(New(TypeDocumentExported, nil)))
}
