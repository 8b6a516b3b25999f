package handler

import (
	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	in := ports.CreateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		IsActive:    req.IsActive,
		Bio:         req.Bio,
		SocialLinks: toSocialLinks(req.SocialLinks),
	}
	if req.Role != nil {
		in.Role = domain.Role(*req.Role)
	}
	return in
}

func toUserPatch(req updateUserRequest) ports.UserPatch {
	p := ports.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      enumPtr[domain.Role](req.Role),
		IsActive:  req.IsActive,
		Bio:       req.Bio,
	}
	if req.SocialLinks != nil {
		links := toSocialLinks(*req.SocialLinks)
		p.SocialLinks = &links
	}
	return p
}

func toSocialLinks(l socialLinksRequest) domain.SocialLinks {
	return domain.SocialLinks{
		Github:   l.Github,
		Linkedin: l.Linkedin,
		Twitter:  l.Twitter,
		Website:  l.Website,
	}
}

func toStackInput(req createStackRequest) ports.StackInput {
	in := ports.StackInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         enumPtr[domain.StackCategory](req.Category),
		ProficiencyLevel: enumPtr[domain.Proficiency](req.ProficiencyLevel),
		Icon:             req.Icon,
		Color:            req.Color,
		Link:             req.Link,
		Featured:         req.Featured,
		IsActive:         req.IsActive,
		Order:            req.Order,
	}
	if req.YearsOfExperience != nil {
		in.YearsOfExperience = *req.YearsOfExperience
	}
	return in
}

func toStackPatch(req updateStackRequest) ports.StackPatch {
	return ports.StackPatch{
		Name:              req.Name,
		Description:       req.Description,
		Category:          enumPtr[domain.StackCategory](req.Category),
		ProficiencyLevel:  enumPtr[domain.Proficiency](req.ProficiencyLevel),
		Icon:              req.Icon,
		Color:             req.Color,
		Link:              req.Link,
		YearsOfExperience: req.YearsOfExperience,
		Featured:          req.Featured,
		IsActive:          req.IsActive,
		Order:             req.Order,
	}
}

func toWorkInput(req createWorkRequest) ports.WorkInput {
	return ports.WorkInput{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Category:         enumPtr[domain.WorkCategory](req.Category),
		Status:           enumPtr[domain.WorkStatus](req.Status),
		Technologies:     req.Technologies,
		Images:           toImages(req.Images),
		Links:            toLinks(req.Links),
		Features:         req.Features,
		StartDate:        req.Duration.StartDate.ptr(),
		EndDate:          req.Duration.EndDate.ptr(),
		Featured:         req.Featured,
		IsActive:         req.IsActive,
		Order:            req.Order,
	}
}

func toWorkPatch(req updateWorkRequest) ports.WorkPatch {
	p := ports.WorkPatch{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Category:         enumPtr[domain.WorkCategory](req.Category),
		Status:           enumPtr[domain.WorkStatus](req.Status),
		Technologies:     req.Technologies,
		Features:         req.Features,
		Featured:         req.Featured,
		IsActive:         req.IsActive,
		Order:            req.Order,
	}
	if req.Images != nil {
		images := toImages(*req.Images)
		p.Images = &images
	}
	if req.Links != nil {
		links := toLinks(*req.Links)
		p.Links = &links
	}
	if req.Duration != nil {
		p.Duration = &domain.Duration{
			StartDate: req.Duration.StartDate.ptr(),
			EndDate:   req.Duration.EndDate.ptr(),
		}
	}
	return p
}

func toImages(in []imageRequest) []domain.Image {
	out := make([]domain.Image, len(in))
	for i, img := range in {
		out[i] = domain.Image{URL: img.URL, Caption: img.Caption, IsMain: img.IsMain}
	}
	return out
}

func toLinks(l linksRequest) domain.WorkLinks {
	return domain.WorkLinks{Live: l.Live, Github: l.Github, Documentation: l.Documentation}
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
