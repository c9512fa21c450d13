package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentService handles lecture asset uploads: videos and PDFs referenced by
// content lectures via their URLs. Video uploads are probed so the catalog can
// show duration and resolution.
type ContentService struct {
	Storage *StorageService
}

func NewContentService(storage *StorageService) *ContentService {
	return &ContentService{Storage: storage}
}

// UploadResult describes a stored asset.
type UploadResult struct {
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	ContentType  string          `json:"content_type"`
	Size         int64           `json:"size"`
	Video        *util.VideoInfo `json:"video,omitempty"`
}

// UploadAsset stores an uploaded file under a generated name. Only video and
// PDF uploads are accepted.
func (s *ContentService) UploadAsset(ctx context.Context, header *multipart.FileHeader) (*UploadResult, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType, err := util.ValidateMimeType(file, []string{util.MimeVideo, util.MimePDF})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if util.IsPDF(contentType) {
		ext = ".pdf"
	}
	filename := uuid.NewString() + ext

	result := &UploadResult{ContentType: contentType, Size: header.Size}

	if util.IsVideo(contentType) {
		if !allowedVideoExt(ext) {
			return nil, fmt.Errorf("%w: unsupported video extension %q", util.ErrInvalidInput, ext)
		}
		// ffprobe needs a file on disk, so spool the upload first.
		tmp, err := os.CreateTemp("", "lms-upload-*"+ext)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()

		info, err := util.GetVideoInfo(tmp.Name())
		if err != nil {
			logger.Log.Warn("video probe failed", zap.String("file", header.Filename), zap.Error(err))
		} else {
			result.Video = info
		}

		url, err := s.Storage.UploadFile(ctx, filename, tmp.Name(), contentType)
		if err != nil {
			return nil, err
		}
		result.URL = url

		thumbPath := tmp.Name() + ".jpg"
		if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err != nil {
			logger.Log.Warn("thumbnail generation failed", zap.String("file", header.Filename), zap.Error(err))
			return result, nil
		}
		defer os.Remove(thumbPath)

		thumbName := strings.TrimSuffix(filename, ext) + "_thumb.jpg"
		thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg")
		if err != nil {
			logger.Log.Warn("thumbnail upload failed", zap.Error(err))
			return result, nil
		}
		result.ThumbnailURL = thumbURL
		return result, nil
	}

	url, err := s.Storage.Upload(ctx, filename, file, header.Size, contentType)
	if err != nil {
		return nil, err
	}
	result.URL = url
	return result, nil
}

func allowedVideoExt(ext string) bool {
	for _, allowed := range util.AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
