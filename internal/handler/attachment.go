package handler

import (
	"net/http"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/utils"
)

func (h *Handler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}

	var body api.CreateAttachmentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	attachment, err := h.chat.AttachFile(uid, domain.AttachmentCreationData{
		MessageId: body.MessageId,
		FileUrl:   body.FileUrl,
		FileType:  body.FileType,
		FileSize:  body.FileSize,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewAttachmentResponse(attachment))
}
