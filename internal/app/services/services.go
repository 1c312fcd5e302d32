package services

import (
	authz "github.com/zhangjiang/campuswall/internal/app/auth"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
)

// Services defined in this package:
// - AuthService: signup, login, email verification, profile
// - PostService: wall posts and announcements
// - CommentService: comments under posts
// - LikeService: idempotent post likes
// - ReportService: content reports and admin review
// - AdminService: identity verification requests

// resolveAuthor maps an author profile through the content's anonymity
// level. Fully anonymous content exposes no profile flags at all.
func resolveAuthor(level models.AnonymityLevel, profile *models.Profile) dto.AuthorInfo {
	info := dto.AuthorInfo{
		DisplayName: authz.DisplayIdentity(level, profile),
	}
	if level != models.AnonymityFull && profile != nil {
		info.IsVerified = profile.IsVerified
		info.IsAdmin = profile.IsAdmin
	}
	return info
}
