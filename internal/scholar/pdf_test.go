// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"testing"

	"github.com/pdiddy/paper2notion/pkg/types"
)

func TestResolvePDFURL(t *testing.T) {
	oa := &types.OpenAccessPDF{URL: "https://oa.example/paper.pdf"}

	tests := []struct {
		name    string
		detail  types.PaperDetail
		wantURL string
		wantOK  bool
	}{
		{
			"open access beats arXiv",
			types.PaperDetail{OpenAccessPDF: oa, ExternalIDs: types.ExternalIDs{"ArXiv": "1234.5678"}},
			"https://oa.example/paper.pdf", true,
		},
		{
			"open access beats everything",
			types.PaperDetail{OpenAccessPDF: oa, ExternalIDs: types.ExternalIDs{"ACL": "P19-1001", "ArXiv": "1", "DOI": "10.1/x"}},
			"https://oa.example/paper.pdf", true,
		},
		{
			"ACL beats arXiv and DOI",
			types.PaperDetail{ExternalIDs: types.ExternalIDs{"ACL": "P19-1001", "ArXiv": "1906.00001", "DOI": "10.18653/v1/P19-1001"}},
			"https://aclanthology.org/P19-1001.pdf", true,
		},
		{
			"arXiv beats DOI",
			types.PaperDetail{ExternalIDs: types.ExternalIDs{"ArXiv": "1234.5678", "DOI": "10.1/x"}},
			"https://arxiv.org/pdf/1234.5678.pdf", true,
		},
		{
			"arXiv only",
			types.PaperDetail{ExternalIDs: types.ExternalIDs{"ArXiv": "1234.5678"}},
			"https://arxiv.org/pdf/1234.5678.pdf", true,
		},
		{
			"DOI only",
			types.PaperDetail{ExternalIDs: types.ExternalIDs{"DOI": "10.1/x"}},
			"https://doi.org/10.1/x", true,
		},
		{
			"unrelated identifiers only",
			types.PaperDetail{ExternalIDs: types.ExternalIDs{"CorpusId": "42", "MAG": "7"}},
			"", false,
		},
		{
			"empty identifier value ignored",
			types.PaperDetail{ExternalIDs: types.ExternalIDs{"ACL": "", "DOI": "10.1/x"}},
			"https://doi.org/10.1/x", true,
		},
		{
			"nothing at all",
			types.PaperDetail{},
			"", false,
		},
		{
			"empty open access URL falls through",
			types.PaperDetail{OpenAccessPDF: &types.OpenAccessPDF{}, ExternalIDs: types.ExternalIDs{"ArXiv": "2301.07041"}},
			"https://arxiv.org/pdf/2301.07041.pdf", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePDFURL(tt.detail)
			if got != tt.wantURL || ok != tt.wantOK {
				t.Errorf("ResolvePDFURL() = %q, %v; want %q, %v", got, ok, tt.wantURL, tt.wantOK)
			}
		})
	}
}
