package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/edvin/tradelink/internal/api/response"
	"github.com/edvin/tradelink/internal/uploader"
)

// maxUploadBytes caps a single multipart request body. Product images are
// photos, not archives.
const maxUploadBytes = 32 << 20

type Upload struct {
	svc *uploader.Service
}

func NewUpload(svc *uploader.Service) *Upload {
	return &Upload{svc: svc}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Single proxies one image to the remote store and returns its public URL.
// Exactly one file is accepted per request.
func (h *Upload) Single(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		response.WriteError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	if len(files) > 1 {
		response.WriteError(w, http.StatusBadRequest, "only one file per request")
		return
	}

	file, err := readPart(files[0])
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "unreadable file")
		return
	}

	images, results, err := h.svc.UploadBatch(r.Context(), nil, []uploader.File{file})
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if len(images) == 0 {
		// The store error was already logged with detail by the workflow.
		response.WriteError(w, http.StatusInternalServerError, results[0].Err)
		return
	}

	response.WriteJSON(w, http.StatusOK, uploadResponse{URL: images[0]})
}

type uploadBatchResponse struct {
	Images  []string          `json:"images"`
	Results []uploader.Result `json:"results"`
}

// Batch uploads several images against an existing accumulated list. The
// whole batch is rejected when it would exceed the per-product cap; otherwise
// each file is attempted independently.
func (h *Upload) Batch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	parts := r.MultipartForm.File["file"]
	if len(parts) == 0 {
		response.WriteError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	files := make([]uploader.File, 0, len(parts))
	for _, part := range parts {
		file, err := readPart(part)
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, "unreadable file: "+part.Filename)
			return
		}
		files = append(files, file)
	}

	existing := r.MultipartForm.Value["existing"]

	images, results, err := h.svc.UploadBatch(r.Context(), existing, files)
	if errors.Is(err, uploader.ErrTooManyImages) {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, uploadBatchResponse{Images: images, Results: results})
}

func readPart(fh *multipart.FileHeader) (uploader.File, error) {
	f, err := fh.Open()
	if err != nil {
		return uploader.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return uploader.File{}, err
	}

	return uploader.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
