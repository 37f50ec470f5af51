// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: calendarprovider/v1/calendarprovider.proto

package calendarproviderv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type ListEventsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	CalendarId    string                 `protobuf:"bytes,1,opt,name=calendar_id,json=calendarId,proto3" json:"calendar_id,omitempty"`
	TimeMin       *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=time_min,json=timeMin,proto3" json:"time_min,omitempty"`
	TimeMax       *timestamppb.Timestamp `protobuf:"bytes,3,opt,name=time_max,json=timeMax,proto3" json:"time_max,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListEventsRequest) Reset() {
	*x = ListEventsRequest{}
	mi := &file_calendarprovider_v1_calendarprovider_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListEventsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListEventsRequest) ProtoMessage() {}

func (x *ListEventsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_calendarprovider_v1_calendarprovider_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListEventsRequest.ProtoReflect.Descriptor instead.
func (*ListEventsRequest) Descriptor() ([]byte, []int) {
	return file_calendarprovider_v1_calendarprovider_proto_rawDescGZIP(), []int{0}
}

func (x *ListEventsRequest) GetCalendarId() string {
	if x != nil {
		return x.CalendarId
	}
	return ""
}

func (x *ListEventsRequest) GetTimeMin() *timestamppb.Timestamp {
	if x != nil {
		return x.TimeMin
	}
	return nil
}

func (x *ListEventsRequest) GetTimeMax() *timestamppb.Timestamp {
	if x != nil {
		return x.TimeMax
	}
	return nil
}

type ListEventsResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Events        []*Event               `protobuf:"bytes,1,rep,name=events,proto3" json:"events,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListEventsResponse) Reset() {
	*x = ListEventsResponse{}
	mi := &file_calendarprovider_v1_calendarprovider_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListEventsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListEventsResponse) ProtoMessage() {}

func (x *ListEventsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_calendarprovider_v1_calendarprovider_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListEventsResponse.ProtoReflect.Descriptor instead.
func (*ListEventsResponse) Descriptor() ([]byte, []int) {
	return file_calendarprovider_v1_calendarprovider_proto_rawDescGZIP(), []int{1}
}

func (x *ListEventsResponse) GetEvents() []*Event {
	if x != nil {
		return x.Events
	}
	return nil
}

type Event struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Id            string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Start         *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=start,proto3" json:"start,omitempty"`
	End           *timestamppb.Timestamp `protobuf:"bytes,3,opt,name=end,proto3" json:"end,omitempty"`
	AllDay        bool                   `protobuf:"varint,4,opt,name=all_day,json=allDay,proto3" json:"all_day,omitempty"`
	Status        string                 `protobuf:"bytes,5,opt,name=status,proto3" json:"status,omitempty"`
	Transparency  string                 `protobuf:"bytes,6,opt,name=transparency,proto3" json:"transparency,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *Event) Reset() {
	*x = Event{}
	mi := &file_calendarprovider_v1_calendarprovider_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *Event) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*Event) ProtoMessage() {}

func (x *Event) ProtoReflect() protoreflect.Message {
	mi := &file_calendarprovider_v1_calendarprovider_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use Event.ProtoReflect.Descriptor instead.
func (*Event) Descriptor() ([]byte, []int) {
	return file_calendarprovider_v1_calendarprovider_proto_rawDescGZIP(), []int{2}
}

func (x *Event) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Event) GetStart() *timestamppb.Timestamp {
	if x != nil {
		return x.Start
	}
	return nil
}

func (x *Event) GetEnd() *timestamppb.Timestamp {
	if x != nil {
		return x.End
	}
	return nil
}

func (x *Event) GetAllDay() bool {
	if x != nil {
		return x.AllDay
	}
	return false
}

func (x *Event) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *Event) GetTransparency() string {
	if x != nil {
		return x.Transparency
	}
	return ""
}

var File_calendarprovider_v1_calendarprovider_proto protoreflect.FileDescriptor

const file_calendarprovider_v1_calendarprovider_proto_rawDesc = "" +
	"\n" +
	"*calendarprovider/v1/calendarprovider.proto\x12\x13calendarprovider.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"\xa2\x01\n" +
	"\x11ListEventsRequest\x12\x1f\n" +
	"\vcalendar_id\x18\x01 \x01(\tR\n" +
	"calendarId\x125\n" +
	"\btime_min\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\atimeMin\x125\n" +
	"\btime_max\x18\x03 \x01(\v2\x1a.google.protobuf.TimestampR\atimeMax\"H\n" +
	"\x12ListEventsResponse\x122\n" +
	"\x06events\x18\x01 \x03(\v2\x1a.calendarprovider.v1.EventR\x06events\"\xcc\x01\n" +
	"\x05Event\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\x120\n" +
	"\x05start\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\x05start\x12,\n" +
	"\x03end\x18\x03 \x01(\v2\x1a.google.protobuf.TimestampR\x03end\x12\x17\n" +
	"\aall_day\x18\x04 \x01(\bR\x06allDay\x12\x16\n" +
	"\x06status\x18\x05 \x01(\tR\x06status\x12\"\n" +
	"\ftransparency\x18\x06 \x01(\tR\ftransparency2x\n" +
	"\x17CalendarProviderService\x12]\n" +
	"\n" +
	"ListEvents\x12&.calendarprovider.v1.ListEventsRequest\x1a'.calendarprovider.v1.ListEventsResponseBPZNgithub.com/agendo-app/agendo/protos/gen/calendarprovider/v1;calendarproviderv1b\x06proto3"

var (
	file_calendarprovider_v1_calendarprovider_proto_rawDescOnce sync.Once
	file_calendarprovider_v1_calendarprovider_proto_rawDescData []byte
)

func file_calendarprovider_v1_calendarprovider_proto_rawDescGZIP() []byte {
	file_calendarprovider_v1_calendarprovider_proto_rawDescOnce.Do(func() {
		file_calendarprovider_v1_calendarprovider_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_calendarprovider_v1_calendarprovider_proto_rawDesc), len(file_calendarprovider_v1_calendarprovider_proto_rawDesc)))
	})
	return file_calendarprovider_v1_calendarprovider_proto_rawDescData
}

var file_calendarprovider_v1_calendarprovider_proto_msgTypes = make([]protoimpl.MessageInfo, 3)
var file_calendarprovider_v1_calendarprovider_proto_goTypes = []any{
	(*ListEventsRequest)(nil),     // 0: calendarprovider.v1.ListEventsRequest
	(*ListEventsResponse)(nil),    // 1: calendarprovider.v1.ListEventsResponse
	(*Event)(nil),                 // 2: calendarprovider.v1.Event
	(*timestamppb.Timestamp)(nil), // 3: google.protobuf.Timestamp
}
var file_calendarprovider_v1_calendarprovider_proto_depIdxs = []int32{
	3, // 0: calendarprovider.v1.ListEventsRequest.time_min:type_name -> google.protobuf.Timestamp
	3, // 1: calendarprovider.v1.ListEventsRequest.time_max:type_name -> google.protobuf.Timestamp
	2, // 2: calendarprovider.v1.ListEventsResponse.events:type_name -> calendarprovider.v1.Event
	3, // 3: calendarprovider.v1.Event.start:type_name -> google.protobuf.Timestamp
	3, // 4: calendarprovider.v1.Event.end:type_name -> google.protobuf.Timestamp
	0, // 5: calendarprovider.v1.CalendarProviderService.ListEvents:input_type -> calendarprovider.v1.ListEventsRequest
	1, // 6: calendarprovider.v1.CalendarProviderService.ListEvents:output_type -> calendarprovider.v1.ListEventsResponse
	6, // [6:7] is the sub-list for method output_type
	5, // [5:6] is the sub-list for method input_type
	5, // [5:5] is the sub-list for extension type_name
	5, // [5:5] is the sub-list for extension extendee
	0, // [0:5] is the sub-list for field type_name
}

func init() { file_calendarprovider_v1_calendarprovider_proto_init() }
func file_calendarprovider_v1_calendarprovider_proto_init() {
	if File_calendarprovider_v1_calendarprovider_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_calendarprovider_v1_calendarprovider_proto_rawDesc), len(file_calendarprovider_v1_calendarprovider_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   3,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_calendarprovider_v1_calendarprovider_proto_goTypes,
		DependencyIndexes: file_calendarprovider_v1_calendarprovider_proto_depIdxs,
		MessageInfos:      file_calendarprovider_v1_calendarprovider_proto_msgTypes,
	}.Build()
	File_calendarprovider_v1_calendarprovider_proto = out.File
	file_calendarprovider_v1_calendarprovider_proto_goTypes = nil
	file_calendarprovider_v1_calendarprovider_proto_depIdxs = nil
}
