// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import "github.com/pdiddy/paper2notion/pkg/types"

// Bases for identifier-derived PDF links.
const (
	aclPDFBase   = "https://aclanthology.org/"
	arxivPDFBase = "https://arxiv.org/pdf/"
	doiBase      = "https://doi.org/"
)

// ResolvePDFURL derives a best-effort PDF link for d. The first rule that
// applies wins, in this order:
//
//  1. the open-access PDF URL, verbatim
//  2. ACL anthology id   -> https://aclanthology.org/<id>.pdf
//  3. arXiv id           -> https://arxiv.org/pdf/<id>.pdf
//  4. DOI                -> https://doi.org/<id>
//
// It returns false when none applies.
func ResolvePDFURL(d types.PaperDetail) (string, bool) {
	if d.OpenAccessPDF != nil && d.OpenAccessPDF.URL != "" {
		return d.OpenAccessPDF.URL, true
	}
	if id, ok := d.ExternalIDs.Lookup(types.SchemeACL); ok {
		return aclPDFBase + id + ".pdf", true
	}
	if id, ok := d.ExternalIDs.Lookup(types.SchemeArXiv); ok {
		return arxivPDFBase + id + ".pdf", true
	}
	if id, ok := d.ExternalIDs.Lookup(types.SchemeDOI); ok {
		return doiBase + id, true
	}
	return "", false
}
