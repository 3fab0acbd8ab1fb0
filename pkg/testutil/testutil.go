package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"go.uber.org/mock/gomock"
)

// RequireEqualStatus asserts that two errors, converted to gRPC
// statuses, have the same code, message and details.
func RequireEqualStatus(t *testing.T, want, got error) {
	t.Helper()
	wantProto := status.Convert(want).Proto()
	gotProto := status.Convert(got).Proto()
	if !proto.Equal(wantProto, gotProto) {
		t.Fatalf("Not equal:\nWant:\n\n%s\n\nGot:\n\n%s", mustMarshalToString(t, wantProto), mustMarshalToString(t, gotProto))
	}
}

// RequirePrefixedStatus compares that two errors, assumed to be gRPC
// statuses, are the same, except got may have extra trailing
// characters in its message.
func RequirePrefixedStatus(t *testing.T, want, got error) {
	t.Helper()
	wantProto := status.Convert(want).Proto()
	gotProto := status.Convert(got).Proto()
	require.Truef(t, strings.HasPrefix(gotProto.GetMessage(), wantProto.GetMessage()), "Want message of status\n%v\nto have prefix\n%v", mustMarshalToString(t, gotProto), wantProto.GetMessage())
	gotProto.Message = wantProto.GetMessage()
	require.True(t, proto.Equal(wantProto, gotProto), "Not equal:\nWant:\n\n%s\n\nGot:\n\n%s", mustMarshalToString(t, wantProto), mustMarshalToString(t, gotProto))
}

type eqStatusMatcher struct {
	status *status.Status
}

// EqStatus is a gomock matcher for gRPC status equality. It can be
// used to match the errors that are passed to an Observer.
func EqStatus(s error) gomock.Matcher {
	return eqStatusMatcher{status: status.Convert(s)}
}

func (m eqStatusMatcher) Matches(got interface{}) bool {
	gotError, ok := got.(error)
	return ok && proto.Equal(m.status.Proto(), status.Convert(gotError).Proto())
}

func (m eqStatusMatcher) String() string {
	return fmt.Sprintf("is status equal to %v", m.status.Err())
}

func mustMarshalToString(t *testing.T, m proto.Message) string {
	s, err := protojson.MarshalOptions{
		Multiline: true,
	}.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	return string(s)
}
