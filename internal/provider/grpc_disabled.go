//go:build !protogen

package provider

// NewGRPCClient is a stub until protobuf stubs are generated (make protogen).
// The service falls back to the REST transport.
func NewGRPCClient(_ string) (Client, error) {
	return nil, nil
}
