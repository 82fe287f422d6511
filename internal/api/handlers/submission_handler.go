package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/hireflow/internal/metrics"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/services"
	"github.com/yoockh/hireflow/internal/utils"
)

// cvField is the multipart part carrying the résumé.
const cvField = "cv"

type SubmissionOptions struct {
	MaxUploadBytes int64
	// NotifyWorkflow forwards every stored submission to the user-form hook.
	NotifyWorkflow bool
}

type SubmissionHandler struct {
	svc      services.SubmissionService
	workflow services.WorkflowService // optional
	metrics  *metrics.Metrics         // optional
	log      *logrus.Logger
	opts     SubmissionOptions
}

func NewSubmissionHandler(svc services.SubmissionService, wf services.WorkflowService, m *metrics.Metrics, log *logrus.Logger, opts SubmissionOptions) *SubmissionHandler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SubmissionHandler{svc: svc, workflow: wf, metrics: m, log: log, opts: opts}
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	const op = "SubmissionHandler.Submit"

	// the whole body is bounded: the file plus room for the text parts
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+(1<<20))

	var (
		fields map[string]any
		file   *services.UploadFile
		err    error
	)
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&fields); err != nil {
			badRequest(c, op, "invalid request body", err)
			return
		}
	} else {
		fields, file, err = h.readMultipart(c)
		if err != nil {
			var cvErr *cvRejectedError
			if errors.As(err, &cvErr) {
				h.countUpload("rejected")
			}
			badRequest(c, op, err.Error(), err)
			return
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}

	sub, err := h.svc.Submit(c.Request.Context(), fields, file)
	if file != nil {
		switch {
		case err == nil:
			h.countUpload("succeeded")
		case utils.IsCode(err, utils.CodeUploadFailed):
			h.countUpload("failed")
		}
	}
	if err != nil {
		writeError(c, err)
		return
	}

	if h.opts.NotifyWorkflow && h.workflow != nil {
		h.notify(c.Request.Context(), sub)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "formId": sub.ID.Hex(), "formData": sub.Data()})
}

func (h *SubmissionHandler) List(c *gin.Context) {
	subs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "forms": subs})
}

// readMultipart collects the text parts and the optional cv file. A text part
// sent once becomes a string, repeated parts become a list that Submit rejects.
func (h *SubmissionHandler) readMultipart(c *gin.Context) (map[string]any, *services.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			// urlencoded or empty bodies carry no file
			if perr := c.Request.ParseForm(); perr != nil {
				return nil, nil, fmt.Errorf("invalid form body: %w", perr)
			}
			return collectValues(c.Request.PostForm), nil, nil
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, nil, &cvRejectedError{fmt.Errorf("cv file exceeds %d bytes", h.opts.MaxUploadBytes)}
		}
		return nil, nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	fields := collectValues(form.Value)

	headers := form.File[cvField]
	if len(headers) == 0 {
		return fields, nil, nil
	}
	fh := headers[0]
	if fh.Size > h.opts.MaxUploadBytes {
		return nil, nil, &cvRejectedError{fmt.Errorf("cv file exceeds %d bytes", h.opts.MaxUploadBytes)}
	}

	content, err := readFileHeader(fh)
	if err != nil {
		return nil, nil, &cvRejectedError{fmt.Errorf("failed to read cv file: %w", err)}
	}
	return fields, &services.UploadFile{Filename: fh.Filename, Content: content}, nil
}

// cvRejectedError marks a request turned away because of its cv file.
type cvRejectedError struct{ err error }

func (e *cvRejectedError) Error() string { return e.err.Error() }
func (e *cvRejectedError) Unwrap() error { return e.err }

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func collectValues(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			out[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			out[k] = list
		}
	}
	return out
}

func (h *SubmissionHandler) notify(ctx context.Context, sub *models.Submission) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if err := h.workflow.NotifySubmission(nctx, sub); err != nil {
		h.log.WithError(err).WithField("submission_id", sub.ID.Hex()).Warn("submission notification failed")
	}
}

func (h *SubmissionHandler) countUpload(status string) {
	if h.metrics != nil {
		h.metrics.UploadsTotal.WithLabelValues(status).Inc()
	}
}
