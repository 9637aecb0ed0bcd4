package mapper

import (
	"asknova-be/internal/dto"
	"asknova-be/internal/entity"
	"asknova-be/pkg/kaggle"
)

func KaggleToDescriptors(datasets []kaggle.Dataset) []entity.DatasetDescriptor {
	out := make([]entity.DatasetDescriptor, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, entity.DatasetDescriptor{
			Title:         d.Title,
			Url:           d.Url,
			Subtitle:      d.Subtitle,
			CreatorName:   d.CreatorName,
			DownloadCount: d.DownloadCount,
		})
	}
	return out
}

func DescriptorsToDTO(datasets []entity.DatasetDescriptor) []dto.DatasetDTO {
	out := make([]dto.DatasetDTO, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, dto.DatasetDTO{
			Title:         d.Title,
			Url:           d.Url,
			Subtitle:      d.Subtitle,
			CreatorName:   d.CreatorName,
			DownloadCount: d.DownloadCount,
		})
	}
	return out
}

func MessagesToDTO(messages []entity.Message) []dto.MessageDTO {
	out := make([]dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.MessageDTO{
			Role:         m.Role,
			Content:      m.Content,
			Datasets:     DescriptorsToDTO(m.Datasets),
			TrainingData: m.TrainingData,
			Timestamp:    m.Timestamp,
		})
	}
	return out
}
