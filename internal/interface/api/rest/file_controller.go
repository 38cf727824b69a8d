package rest

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/jwt"
	"file-storage-api/internal/interface/api/rest/dto/envelope"
	dto "file-storage-api/internal/interface/api/rest/dto/file"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

const (
	// room for multipart boundaries and headers on top of the file itself
	multipartOverhead = int64(1 << 20)

	msgUploaded  = "File uploaded successfully."
	msgRetrieved = "Files retrieved successfully."
	msgDeleted   = "File deleted successfully."
)

type FileController struct {
	fileService    ports.FileService
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUploadBytes int64,
) *FileController {
	fc := &FileController{
		fileService:    fileService,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}

	requireUser := middleware.AuthMiddleware(jwtService)
	r.POST(RouteUploadFile, requireUser, fc.UploadFileHandler)
	r.GET(RouteListFiles, requireUser, fc.ListFilesHandler)
	r.GET(RouteDownloadFile, requireUser, fc.DownloadFileHandler)
	r.DELETE(RouteDeleteFile, requireUser, fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	if fc.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fc.maxUploadBytes+multipartOverhead)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fc.maxUploadBytes > 0 && fh.Size > fc.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	if _, err = fc.fileService.UploadFile(c.Request.Context(), owner, fh); err != nil {
		fc.fail(c, err, "UploadFile()")
		return
	}

	c.JSON(http.StatusOK, envelope.OK(msgUploaded, nil))
}

func (fc *FileController) ListFilesHandler(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	files, err := fc.fileService.ListFiles(c.Request.Context(), owner.ID)
	if err != nil {
		fc.fail(c, err, "ListFiles()")
		return
	}

	c.JSON(http.StatusOK, envelope.OK(msgRetrieved, dto.ToResponseFiles(files)))
}

func (fc *FileController) DownloadFileHandler(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := validator.ParseFileID(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dl, err := fc.fileService.DownloadFile(c.Request.Context(), owner.ID, id)
	if err != nil {
		fc.fail(c, err, "DownloadFile()")
		return
	}
	defer dl.Content.Close()

	disposition := mime.FormatMediaType("inline", map[string]string{"filename": dl.File.FileName})
	if disposition == "" {
		disposition = "inline"
	}

	c.DataFromReader(
		http.StatusOK,
		dl.Size,
		dl.File.MimeType,
		dl.Content,
		map[string]string{"Content-Disposition": disposition},
	)
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := validator.ParseFileID(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = fc.fileService.DeleteFile(c.Request.Context(), owner.ID, id); err != nil {
		fc.fail(c, err, "DeleteFile()")
		return
	}

	c.JSON(http.StatusOK, envelope.OK(msgDeleted, nil))
}

// fail answers expected domain errors as is and hides everything else behind a 500.
func (fc *FileController) fail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrBlobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		fc.logger.Error(op+" error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func currentUser(c *gin.Context) (user.Identity, bool) {
	u, ok := middleware.Identity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	}
	return u, ok
}
