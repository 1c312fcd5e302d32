package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhangjiang/campuswall/internal/app/models"
)

func TestDisplayIdentity(t *testing.T) {
	profile := &models.Profile{
		StudentID: "123456789",
		RealName:  "张三",
	}

	tests := []struct {
		name   string
		level  models.AnonymityLevel
		author *models.Profile
		want   string
	}{
		{"full hides everything", models.AnonymityFull, profile, "匿名"},
		{"full without profile", models.AnonymityFull, nil, "匿名"},
		{"partial shows real name", models.AnonymityPartial, profile, "张三"},
		{"partial without profile", models.AnonymityPartial, nil, "匿名用户"},
		{"partial with empty name", models.AnonymityPartial, &models.Profile{StudentID: "123456789"}, "匿名用户"},
		{"none shows name and student number", models.AnonymityNone, profile, "张三 (123456789)"},
		{"none without profile", models.AnonymityNone, nil, "匿名用户 (未知学号)"},
		{"none with missing student number", models.AnonymityNone, &models.Profile{RealName: "李四"}, "李四 (未知学号)"},
		{"unknown level stays anonymous", models.AnonymityLevel("weird"), profile, "匿名用户"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayIdentity(tt.level, tt.author))
		})
	}
}

func TestDisplayIdentityIgnoresViewer(t *testing.T) {
	// Resolution depends only on the content's anonymity level; the author
	// viewing their own fully anonymous post still sees the anonymous label.
	author := &models.Profile{ID: 7, StudentID: "123456789", RealName: "张三"}
	assert.Equal(t, "匿名", DisplayIdentity(models.AnonymityFull, author))
}

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name   string
		owner  int64
		viewer Viewer
		want   bool
	}{
		{"owner may mutate", 5, Viewer{UserID: 5}, true},
		{"admin may mutate", 5, Viewer{UserID: 9, IsAdmin: true}, true},
		{"other user may not", 5, Viewer{UserID: 9}, false},
		{"anonymous may not", 5, Viewer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.owner, tt.viewer))
		})
	}
}
