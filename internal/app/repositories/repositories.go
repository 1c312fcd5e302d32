package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository                *UserRepository
	PostRepository                *PostRepository
	CommentRepository             *CommentRepository
	LikeRepository                *LikeRepository
	ReportRepository              *ReportRepository
	VerificationTokenRepository   *VerificationTokenRepository
	VerificationRequestRepository *VerificationRequestRepository
	FileRepository                *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:                NewUserRepository(db),
		PostRepository:                NewPostRepository(db),
		CommentRepository:             NewCommentRepository(db),
		LikeRepository:                NewLikeRepository(db),
		ReportRepository:              NewReportRepository(db),
		VerificationTokenRepository:   NewVerificationTokenRepository(db),
		VerificationRequestRepository: NewVerificationRequestRepository(db),
		FileRepository:                NewFileRepository(db),
	}
}
