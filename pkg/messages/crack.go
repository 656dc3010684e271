package messages

import (
	"encoding/xml"

	"github.com/google/uuid"
)

const NotFoundMessage = "PASSWORD NOT IN DATABASE"

type CrackHashRequest struct {
	XMLName   xml.Name `xml:"CrackHashRequest" json:"-"`
	RequestId string   `xml:"RequestId" json:"requestId"`
	Hash      string   `xml:"Hash" json:"hash"`
	UseSalts  bool     `xml:"UseSalts" json:"useSalts"`
}

type CrackHashResponse struct {
	XMLName   xml.Name `xml:"CrackHashResponse" json:"-"`
	Id        string   `xml:"Id" json:"id"`
	RequestId string   `xml:"RequestId" json:"requestId"`
	Hash      string   `xml:"Hash" json:"hash"`
	Mode      string   `xml:"Mode" json:"mode"`
	Found     []string `xml:"Found>Value" json:"found"`
	Complete  bool     `xml:"Complete" json:"complete"`
	Message   string   `xml:"Message,omitempty" json:"message,omitempty"`
}

func NewCrackHashRequest(hash string, useSalts bool) *CrackHashRequest {
	return &CrackHashRequest{
		RequestId: uuid.NewString(),
		Hash:      hash,
		UseSalts:  useSalts,
	}
}

// NewCrackHashResponse answers req; an empty found list carries
// NotFoundMessage.
func NewCrackHashResponse(req *CrackHashRequest, mode string, found []string, complete bool) *CrackHashResponse {
	if found == nil {
		found = []string{}
	}
	resp := &CrackHashResponse{
		Id:        uuid.NewString(),
		RequestId: req.RequestId,
		Hash:      req.Hash,
		Mode:      mode,
		Found:     found,
		Complete:  complete,
	}
	if len(found) == 0 {
		resp.Message = NotFoundMessage
	}
	return resp
}
