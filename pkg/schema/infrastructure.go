package schema

import (
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// HeaderDefs is the SIF_Header carried by every message payload.
// SIF 1.x splits SIF_Timestamp into SIF_Date and SIF_Time.
type HeaderDefs struct {
	Def                 *element.Def
	MsgID               *element.Def
	Timestamp           *element.Def
	Security            *element.Def
	SecureChannel       *element.Def
	AuthenticationLevel *element.Def
	EncryptionLevel     *element.Def
	SourceID            *element.Def
	DestinationID       *element.Def
	Contexts            *element.Def
	Context             *element.Def
}

// PingDefs is SIF_Ping.
type PingDefs struct {
	Def    *element.Def
	Header *element.Def
}

// AckDefs is SIF_Ack.
type AckDefs struct {
	Def               *element.Def
	Header            *element.Def
	OriginalSourceID  *element.Def
	OriginalMsgID     *element.Def
	Status            *element.Def
	StatusCode        *element.Def
	StatusDesc        *element.Def
	Error             *element.Def
	ErrorCategory     *element.Def
	ErrorCode         *element.Def
	ErrorDesc         *element.Def
	ErrorExtendedDesc *element.Def
}

// EventDefs is SIF_Event. SIF_EventObject holds one data object.
type EventDefs struct {
	Def         *element.Def
	Header      *element.Def
	ObjectData  *element.Def
	EventObject *element.Def
	ObjectName  *element.Def
	Action      *element.Def
}

// RequestDefs is SIF_Request with its SIF_Query.
type RequestDefs struct {
	Def                *element.Def
	Header             *element.Def
	Version            *element.Def
	MaxBufferSize      *element.Def
	Query              *element.Def
	QueryObject        *element.Def
	ObjectName         *element.Def
	QueryElement       *element.Def
	ConditionGroup     *element.Def
	ConditionGroupType *element.Def
	Conditions         *element.Def
	ConditionsType     *element.Def
	Condition          *element.Def
	ConditionElement   *element.Def
	Operator           *element.Def
	Value              *element.Def
}

// ResponseDefs is SIF_Response. SIF_ObjectData holds any data objects.
type ResponseDefs struct {
	Def          *element.Def
	Header       *element.Def
	RequestMsgID *element.Def
	PacketNumber *element.Def
	MorePackets  *element.Def
	ObjectData   *element.Def
}

// RegisterDefs is SIF_Register.
type RegisterDefs struct {
	Def           *element.Def
	Header        *element.Def
	Name          *element.Def
	Version       *element.Def
	MaxBufferSize *element.Def
	Mode          *element.Def
}

const timestampTag = "SIF_Timestamp"

func (s *Schema) declareInfrastructure(b *element.Builder) {
	h := &s.Header
	h.Def = b.Common("SIF_Header")
	h.MsgID = b.Field(h.Def, "SIF_MsgId", simpletype.KindString, elem("SIF_MsgId", 1))
	h.Timestamp = b.Field(h.Def, timestampTag, simpletype.KindDateTime,
		element.Until(sifversion.SIF15r1, timestampTag, 2, element.KindUnsupported).WithSurrogate(NewTimestampSurrogate(timestampTag)),
		element.Since(sifversion.SIF20, timestampTag, 2, element.KindElement))
	h.Security = b.Element(h.Def, "SIF_Security", elem("SIF_Security", 3))
	h.SecureChannel = b.Element(h.Security, "SIF_SecureChannel")
	h.AuthenticationLevel = b.Field(h.SecureChannel, "SIF_AuthenticationLevel", simpletype.KindInt)
	h.EncryptionLevel = b.Field(h.SecureChannel, "SIF_EncryptionLevel", simpletype.KindInt)
	h.SourceID = b.Field(h.Def, "SIF_SourceId", simpletype.KindString, elem("SIF_SourceId", 4))
	h.DestinationID = b.Field(h.Def, "SIF_DestinationId", simpletype.KindString, elem("SIF_DestinationId", 5))
	h.Contexts = b.Element(h.Def, "SIF_Contexts", element.Since(sifversion.SIF20, "SIF_Contexts", 6, element.KindElement))
	h.Context = b.Repeatable(b.Text(b.Element(h.Contexts, "SIF_Context"), simpletype.KindString))

	header := func(payload *element.Def) *element.Def {
		return b.Contextual(payload, h.Def, elem("SIF_Header", 1))
	}

	p := &s.Ping
	p.Def = b.Payload("SIF_Ping")
	p.Header = header(p.Def)

	a := &s.Ack
	a.Def = b.Payload("SIF_Ack")
	a.Header = header(a.Def)
	a.OriginalSourceID = b.Field(a.Def, "SIF_OriginalSourceId", simpletype.KindString, elem("SIF_OriginalSourceId", 2))
	a.OriginalMsgID = b.Field(a.Def, "SIF_OriginalMsgId", simpletype.KindString, elem("SIF_OriginalMsgId", 3))
	a.Status = b.Element(a.Def, "SIF_Status", elem("SIF_Status", 4))
	a.StatusCode = b.Field(a.Status, "SIF_Code", simpletype.KindInt)
	a.StatusDesc = b.Field(a.Status, "SIF_Desc", simpletype.KindString)
	a.Error = b.Element(a.Def, "SIF_Error", elem("SIF_Error", 5))
	a.ErrorCategory = b.Field(a.Error, "SIF_Category", simpletype.KindInt)
	a.ErrorCode = b.Field(a.Error, "SIF_Code", simpletype.KindInt)
	a.ErrorDesc = b.Field(a.Error, "SIF_Desc", simpletype.KindString)
	a.ErrorExtendedDesc = b.Field(a.Error, "SIF_ExtendedDesc", simpletype.KindString)

	e := &s.Event
	e.Def = b.Payload("SIF_Event")
	e.Header = header(e.Def)
	e.ObjectData = b.Element(e.Def, "SIF_ObjectData", elem("SIF_ObjectData", 2))
	e.EventObject = b.AcceptObjects(b.Element(e.ObjectData, "SIF_EventObject"))
	e.ObjectName = b.Field(e.EventObject, "ObjectName", simpletype.KindString, attr("ObjectName", 1))
	e.Action = b.Field(e.EventObject, "Action", simpletype.KindString, attr("Action", 2))

	r := &s.Request
	r.Def = b.Payload("SIF_Request")
	r.Header = header(r.Def)
	r.Version = b.Repeatable(b.Text(b.Element(r.Def, "SIF_Version",
		element.Since(sifversion.SIF11, "SIF_Version", 2, element.KindElement)), simpletype.KindString))
	r.MaxBufferSize = b.Field(r.Def, "SIF_MaxBufferSize", simpletype.KindInt, elem("SIF_MaxBufferSize", 3))
	r.Query = b.Element(r.Def, "SIF_Query", elem("SIF_Query", 4))
	r.QueryObject = b.Element(r.Query, "SIF_QueryObject")
	r.ObjectName = b.Field(r.QueryObject, "ObjectName", simpletype.KindString, attr("ObjectName", 1))
	r.QueryElement = b.Repeatable(b.Text(b.Element(r.QueryObject, "SIF_Element"), simpletype.KindString))
	r.ConditionGroup = b.Element(r.Query, "SIF_ConditionGroup")
	r.ConditionGroupType = b.Field(r.ConditionGroup, "Type", simpletype.KindString, attr("Type", 1))
	r.Conditions = b.Repeatable(b.Element(r.ConditionGroup, "SIF_Conditions"))
	r.ConditionsType = b.Field(r.Conditions, "Type", simpletype.KindString, attr("Type", 1))
	r.Condition = b.Repeatable(b.Element(r.Conditions, "SIF_Condition"))
	r.ConditionElement = b.Field(r.Condition, "SIF_Element", simpletype.KindString)
	r.Operator = b.Field(r.Condition, "SIF_Operator", simpletype.KindString)
	r.Value = b.Field(r.Condition, "SIF_Value", simpletype.KindString)

	rs := &s.Response
	rs.Def = b.Payload("SIF_Response")
	rs.Header = header(rs.Def)
	rs.RequestMsgID = b.Field(rs.Def, "SIF_RequestMsgId", simpletype.KindString, elem("SIF_RequestMsgId", 2))
	rs.PacketNumber = b.Field(rs.Def, "SIF_PacketNumber", simpletype.KindInt, elem("SIF_PacketNumber", 3))
	rs.MorePackets = b.Field(rs.Def, "SIF_MorePackets", simpletype.KindString, elem("SIF_MorePackets", 4))
	rs.ObjectData = b.AcceptObjects(b.Element(rs.Def, "SIF_ObjectData", elem("SIF_ObjectData", 5)))

	g := &s.Register
	g.Def = b.Payload("SIF_Register")
	g.Header = header(g.Def)
	g.Name = b.Field(g.Def, "SIF_Name", simpletype.KindString, elem("SIF_Name", 2))
	g.Version = b.Repeatable(b.Text(b.Element(g.Def, "SIF_Version",
		element.Since(sifversion.SIF11, "SIF_Version", 3, element.KindElement)), simpletype.KindString))
	g.MaxBufferSize = b.Field(g.Def, "SIF_MaxBufferSize", simpletype.KindInt, elem("SIF_MaxBufferSize", 4))
	g.Mode = b.Field(g.Def, "SIF_Mode", simpletype.KindString, elem("SIF_Mode", 5))
}
