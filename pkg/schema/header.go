package schema

import (
	"time"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// NewHeader returns a SIF_Header from sourceID stamped with a fresh
// message id and now, truncated to seconds.
func (s *Schema) NewHeader(sourceID string, now time.Time) (*element.Element, error) {
	h := s.Registry.New(s.Header.Def)
	if err := h.SetString(s.Header.MsgID, element.NewRefID()); err != nil {
		return nil, err
	}
	if _, err := h.SetField(s.Header.Timestamp, simpletype.DateTime(now.Truncate(time.Second))); err != nil {
		return nil, err
	}
	if err := h.SetString(s.Header.SourceID, sourceID); err != nil {
		return nil, err
	}
	return h, nil
}

// NewMessage returns a payload of def carrying a new header.
func (s *Schema) NewMessage(def *element.Def, sourceID string, now time.Time) (*element.Element, error) {
	p := s.Registry.New(def)
	h, err := s.NewHeader(sourceID, now)
	if err != nil {
		return nil, err
	}
	if err := p.AddChild(h); err != nil {
		return nil, err
	}
	return p, nil
}

// HeaderOf returns the SIF_Header of a payload, or nil.
func (s *Schema) HeaderOf(payload *element.Element) *element.Element {
	return payload.Child(s.Header.Def)
}

// MsgID returns the message id of a payload.
func (s *Schema) MsgID(payload *element.Element) string {
	if h := s.HeaderOf(payload); h != nil {
		return h.StringField(s.Header.MsgID)
	}
	return ""
}

// NewEvent wraps obj in a SIF_Event announcing action ("Add", "Change" or
// "Delete").
func (s *Schema) NewEvent(obj *element.Element, action, sourceID string, now time.Time) (*element.Element, error) {
	ev, err := s.NewMessage(s.Event.Def, sourceID, now)
	if err != nil {
		return nil, err
	}
	data, err := ev.EnsureChild(s.Event.ObjectData)
	if err != nil {
		return nil, err
	}
	holder, err := data.EnsureChild(s.Event.EventObject)
	if err != nil {
		return nil, err
	}
	if err := holder.SetString(s.Event.ObjectName, obj.Def().Name()); err != nil {
		return nil, err
	}
	if err := holder.SetString(s.Event.Action, action); err != nil {
		return nil, err
	}
	if err := holder.AddChild(obj); err != nil {
		return nil, err
	}
	return ev, nil
}

// EventObject returns the data object carried by a SIF_Event, or nil.
func (s *Schema) EventObject(event *element.Element) *element.Element {
	if holder := event.Find("SIF_ObjectData/SIF_EventObject"); holder != nil {
		for _, c := range holder.Children() {
			if c.Def().IsObject() {
				return c
			}
		}
	}
	return nil
}

// NewAck acknowledges original with a SIF_Status code.
func (s *Schema) NewAck(original *element.Element, code int32, sourceID string, now time.Time) (*element.Element, error) {
	ack, err := s.NewMessage(s.Ack.Def, sourceID, now)
	if err != nil {
		return nil, err
	}
	if h := s.HeaderOf(original); h != nil {
		if err := ack.SetString(s.Ack.OriginalSourceID, h.StringField(s.Header.SourceID)); err != nil {
			return nil, err
		}
		if err := ack.SetString(s.Ack.OriginalMsgID, h.StringField(s.Header.MsgID)); err != nil {
			return nil, err
		}
	}
	status, err := ack.EnsureChild(s.Ack.Status)
	if err != nil {
		return nil, err
	}
	if _, err := status.SetField(s.Ack.StatusCode, simpletype.Int(code)); err != nil {
		return nil, err
	}
	return ack, nil
}
