package chronofs

import "github.com/kushagras22/chronofs/internal/digest"

// blobDigest returns the digest data would be stored under as a blob,
// without writing anything — the same "blob\n" framing write_blob uses, so
// callers can compare working-tree content against staged or committed
// blobs by digest alone.
func blobDigest(data []byte) string {
	content := make([]byte, 0, len("blob\n")+len(data))
	content = append(content, "blob\n"...)
	content = append(content, data...)
	return digest.Sum(content)
}
