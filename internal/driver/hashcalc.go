package driver

import (
	"encoding/binary"

	"zigscope/internal/project"
)

// cacheKey: H(content || schema || options). Anything that changes what a
// Summary contains must be part of the key.
func cacheKey(content project.Digest, opts *Options) project.Digest {
	var buf [2 + 1 + 8]byte
	binary.LittleEndian.PutUint16(buf[0:], summarySchemaVersion)
	if opts.ReportUnresolved {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint64(buf[3:], uint64(max(opts.MaxDiagnostics, 0))) // #nosec G115
	return project.Combine(content, buf[:])
}
