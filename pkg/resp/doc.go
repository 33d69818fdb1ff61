// Package resp implements the RESP2 wire format used by roar-go.
//
// A frame is a sequence of CRLF terminated chunks whose first byte is a
// type marker:
//
//	+  simple string     +OK\r\n
//	-  error             -ERR unknown command\r\n
//	:  integer           :42\r\n
//	$  bulk string       $5\r\nhello\r\n   ($-1\r\n is null)
//	*  array             *2\r\n$3\r\nGET\r\n$1\r\nk\r\n   (*-1\r\n is null)
//
// Decode and Reader turn bytes into Values, Encode and AppendValue turn a
// Value back into its exact wire form. The package knows nothing about
// commands or storage.
package resp
