package utils

import (
	"strings"

	"github.com/anacrolix/torrent/metainfo"
)

// BuildMagnet synthesizes a magnet URI from a raw info-hash. Hashes that
// parse as 20-byte hex go through metainfo so the output is canonical;
// anything else (v2 hashes, base32 from older indexers) is lowercased and
// embedded as-is.
func BuildMagnet(infoHash string) string {
	h := strings.ToLower(infoHash)
	var parsed metainfo.Hash
	if err := parsed.FromHexString(h); err == nil {
		return metainfo.Magnet{InfoHash: parsed}.String()
	}
	return "magnet:?xt=urn:btih:" + h
}
