package models

// Review is the canonical, format-independent review record persisted to the
// processed dataset. Absence is a first-class state: Rating 0 means no rating
// was recoverable from the source row, an empty AtISO means no timestamp was.
// Absent fields are omitted from the JSON form rather than written as zeroes.
type Review struct {
	AppID         string `json:"appId"`
	ReviewID      string `json:"reviewId,omitempty"`
	UserName      string `json:"userName,omitempty"`
	UserImage     string `json:"userImage,omitempty"`
	Text          string `json:"text"`
	Rating        int    `json:"rating,omitempty"`
	ThumbsUpCount int    `json:"thumbsUpCount"`
	ReviewVersion string `json:"reviewCreatedVersion,omitempty"`
	At            string `json:"at,omitempty"`
	AtISO         string `json:"at_iso,omitempty"`
	AtEpoch       int64  `json:"at_epoch,omitempty"`
	ReplyContent  string `json:"replyContent,omitempty"`
	RepliedAt     string `json:"repliedAt,omitempty"`
	AppVersion    string `json:"appVersion,omitempty"`
}
