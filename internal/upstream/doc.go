// Package upstream performs the single outbound GET each tool makes and
// classifies failures into kinds callers can branch on:
//
//	KindUnreachable  transport failure (DNS, refused, timeout, cancelled)
//	KindStatus       upstream answered with a non-2xx status
//	KindMalformed    body missing, not JSON, or lacking an expected field
//
// There are no retries; each call is one request.
package upstream
