package services

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

// Storage namespaces for uploaded assets.
const (
	ProjectNamespace = "projects"
	JourneyNamespace = "journey"
)

// ImageService pairs the storage gateway with the image tables: each
// stored file gets a database row at the end of its owner's ordering
// sequence, and each deletion removes the row first, then the stored
// object best-effort.
type ImageService struct {
	dbClient       *database.Client
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewImageService(dbClient *database.Client, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *ImageService {
	return &ImageService{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// UploadProjectImages stores each file and appends a project_images
// row for it. Files that fail validation or storage are skipped with a
// reason instead of aborting the batch.
func (s *ImageService) UploadProjectImages(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) (*models.UploadResult, error) {
	if _, err := s.dbClient.GetProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	result := &models.UploadResult{Images: []models.UploadedImage{}}
	for _, fileHeader := range files {
		stored, skip := s.storeFile(ProjectNamespace, fileHeader)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}

		altText := altTextFromFilename(fileHeader.Filename)
		img, err := s.dbClient.AddProjectImage(ctx, projectID, stored.URL, &altText, nil)
		if err != nil {
			log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to record project image")
			result.Skipped = append(result.Skipped, models.SkippedFile{
				Filename: fileHeader.Filename,
				Reason:   errs.UserMessage(err),
			})
			continue
		}

		result.Images = append(result.Images, models.UploadedImage{
			ID:         img.ID.String(),
			URL:        img.URL,
			Path:       stored.Path,
			OrderIndex: img.OrderIndex,
		})
	}

	if len(result.Images) > 0 {
		s.realtimeClient.NotifyContentChanged("project", projectID, "images_uploaded")
	}
	return result, nil
}

// UploadJourneyImages mirrors UploadProjectImages for journey entries.
func (s *ImageService) UploadJourneyImages(ctx context.Context, journeyID uuid.UUID, files []*multipart.FileHeader) (*models.UploadResult, error) {
	if _, err := s.dbClient.GetJourneyEntry(ctx, journeyID); err != nil {
		return nil, err
	}

	result := &models.UploadResult{Images: []models.UploadedImage{}}
	for _, fileHeader := range files {
		stored, skip := s.storeFile(JourneyNamespace, fileHeader)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}

		altText := altTextFromFilename(fileHeader.Filename)
		img, err := s.dbClient.AddJourneyImage(ctx, journeyID, stored.URL, &altText, nil)
		if err != nil {
			log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to record journey image")
			result.Skipped = append(result.Skipped, models.SkippedFile{
				Filename: fileHeader.Filename,
				Reason:   errs.UserMessage(err),
			})
			continue
		}

		result.Images = append(result.Images, models.UploadedImage{
			ID:         img.ID.String(),
			URL:        img.URL,
			Path:       stored.Path,
			OrderIndex: img.OrderIndex,
		})
	}

	if len(result.Images) > 0 {
		s.realtimeClient.NotifyContentChanged("journey", journeyID, "images_uploaded")
	}
	return result, nil
}

func (s *ImageService) storeFile(namespace string, fileHeader *multipart.FileHeader) (*supabase.StoredFile, *models.SkippedFile) {
	contentType := fileHeader.Header.Get("Content-Type")

	file, err := fileHeader.Open()
	if err != nil {
		return nil, &models.SkippedFile{Filename: fileHeader.Filename, Reason: "could not read file"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &models.SkippedFile{Filename: fileHeader.Filename, Reason: "could not read file"}
	}

	stored, err := s.storageClient.Upload(namespace, data, fileHeader.Filename, contentType)
	if err != nil {
		log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("skipping file")
		return nil, &models.SkippedFile{Filename: fileHeader.Filename, Reason: errs.UserMessage(err)}
	}
	return stored, nil
}

// DeleteProjectImage removes the row, then the stored object
// best-effort, then reindexes the remaining siblings so their
// order_index sequence stays dense.
func (s *ImageService) DeleteProjectImage(ctx context.Context, imageID uuid.UUID) error {
	img, err := s.dbClient.GetProjectImage(ctx, imageID)
	if err != nil {
		return err
	}

	if err := s.dbClient.DeleteProjectImage(ctx, imageID); err != nil {
		return err
	}

	s.removeStored(img.URL)

	if err := s.dbClient.ReindexProjectImages(ctx, img.ProjectID); err != nil {
		return err
	}

	s.realtimeClient.NotifyContentChanged("project", img.ProjectID, "image_deleted")
	return nil
}

// DeleteJourneyImage mirrors DeleteProjectImage for journey entries.
func (s *ImageService) DeleteJourneyImage(ctx context.Context, imageID uuid.UUID) error {
	img, err := s.dbClient.GetJourneyImage(ctx, imageID)
	if err != nil {
		return err
	}

	if err := s.dbClient.DeleteJourneyImage(ctx, imageID); err != nil {
		return err
	}

	s.removeStored(img.URL)

	if err := s.dbClient.ReindexJourneyImages(ctx, img.JourneyID); err != nil {
		return err
	}

	s.realtimeClient.NotifyContentChanged("journey", img.JourneyID, "image_deleted")
	return nil
}

func (s *ImageService) removeStored(url string) {
	path, ok := s.storageClient.PathFromURL(url)
	if !ok {
		return
	}
	if err := s.storageClient.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("storage deletion failed (non-critical)")
	}
}

// altTextFromFilename strips the extension, matching the alt text the
// dashboard used to derive on upload.
func altTextFromFilename(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i]
		}
		if filename[i] == '/' {
			break
		}
	}
	return filename
}
