package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// getHTTPRangeHeader creates a HTTP Range header for a non-empty byte
// range.
func getHTTPRangeHeader(offsetBytes, sizeBytes int64) string {
	return fmt.Sprintf("bytes=%d-%d", offsetBytes, offsetBytes+sizeBytes-1)
}

func convertHTTPUnexpectedStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return status.Errorf(codes.NotFound, "HTTP request failed with status %#v", resp.Status)
	}
	return status.Errorf(codes.Internal, "HTTP request failed with status %#v", resp.Status)
}

// NewHTTPSource creates a ByteSource for an object that is served by a
// HTTP server. The size of the object is obtained by sending a HEAD
// request. Reads of the source are translated to GET requests with a
// Range header, which the server is required to honor.
func NewHTTPSource(ctx context.Context, client *http.Client, url string) (ByteSource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to create HTTP request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, util.StatusWrap(util.StatusFromError(err), "HTTP request failed")
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, convertHTTPUnexpectedStatus(resp)
	}
	if resp.ContentLength < 0 {
		return nil, status.Error(codes.Unimplemented, "HTTP server did not report the size of the object")
	}

	totalSizeBytes := resp.ContentLength
	return NewRangeByteSource(
		func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, util.StatusWrapWithCode(err, codes.Internal, "Failed to create HTTP request")
			}
			req.Header.Set("Range", getHTTPRangeHeader(offsetBytes, sizeBytes))
			resp, err := client.Do(req)
			if err != nil {
				return nil, util.StatusWrap(util.StatusFromError(err), "HTTP request failed")
			}
			switch resp.StatusCode {
			case http.StatusPartialContent:
				return resp.Body, nil
			case http.StatusOK:
				// Servers may ignore the Range header if
				// the full object was requested.
				if offsetBytes == 0 && sizeBytes == totalSizeBytes {
					return resp.Body, nil
				}
			}
			resp.Body.Close()
			return nil, convertHTTPUnexpectedStatus(resp)
		},
		totalSizeBytes), nil
}
