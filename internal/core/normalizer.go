package core

import (
	"driftnet/internal/clients/jackett"
	"driftnet/internal/utils"
)

// NormalizedResult is the canonical record streamed to clients. Pointer
// fields mirror the optional upstream fields and marshal to null when the
// indexer did not report them. The JSON names (including lowercase "year")
// are the wire contract.
type NormalizedResult struct {
	Title     *string `json:"Title"`
	Link      *string `json:"Link"`
	Size      *int64  `json:"Size"`
	Seeders   *int    `json:"Seeders"`
	Leechers  *int    `json:"Leechers"`
	InfoHash  *string `json:"InfoHash"`
	IndexerID *string `json:"IndexerId"`
	Year      *int    `json:"year"`
	Details   *string `json:"Details"`
}

// ErrorRecord stands in for results when one indexer's call fails. It is
// streamed inline so a partial failure never aborts the whole search.
type ErrorRecord struct {
	Error string `json:"error"`
}

// Normalize maps one raw Jackett record to the canonical shape. Pure; absent
// inputs degrade to nil fields, never to an error.
func Normalize(raw jackett.RawResult) NormalizedResult {
	return NormalizedResult{
		Title:     raw.Title,
		Link:      resolveLink(raw),
		Size:      raw.Size,
		Seeders:   raw.Seeders,
		Leechers:  raw.Leechers,
		InfoHash:  raw.InfoHash,
		IndexerID: raw.Tracker,
		Year:      raw.Year,
		Details:   raw.Details,
	}
}

// resolveLink picks the magnet URI when the indexer supplied one, otherwise
// synthesizes one from the info-hash, otherwise falls back to the raw
// torrent URL (which may itself be absent).
func resolveLink(raw jackett.RawResult) *string {
	if strVal(raw.MagnetURI) != "" {
		return raw.MagnetURI
	}
	if strVal(raw.Link) != "" && strVal(raw.InfoHash) != "" {
		magnet := utils.BuildMagnet(*raw.InfoHash)
		return &magnet
	}
	return raw.Link
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
