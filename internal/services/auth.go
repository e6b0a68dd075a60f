package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/pkg/ctxutil"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/repos"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type AuthService interface {
	// Login checks the demo student credentials and issues an access
	// token. Credential mismatches all collapse to ErrInvalidCredentials.
	Login(ctx context.Context, studentID, password string) (string, *types.Student, error)
	Logout(ctx context.Context, tokenString string) error
	// SetContextFromToken validates the JWT and attaches request data.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetStudent(ctx context.Context) (*types.Student, error)
	GetAccessTTL() time.Duration
	// SeedDemoStudents inserts the demo roster on first boot.
	SeedDemoStudents(ctx context.Context) error
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	studentRepo  repos.StudentRepo
	tokenRepo    repos.StudentTokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	studentRepo repos.StudentRepo,
	tokenRepo repos.StudentTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		studentRepo:  studentRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Login(ctx context.Context, studentID, password string) (string, *types.Student, error) {
	if studentID == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	student, err := as.studentRepo.GetByStudentID(ctx, nil, studentID)
	if err != nil {
		return "", nil, fmt.Errorf("load student: %w", err)
	}
	if student == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	tokenString, expiresAt, err := as.generateAccessToken(student)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	if _, err := as.tokenRepo.Create(ctx, nil, &types.StudentToken{
		ID:        uuid.New(),
		StudentID: student.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", nil, fmt.Errorf("persist access token: %w", err)
	}

	as.log.Info("Student logged in", "student_id", student.StudentID)
	return tokenString, student, nil
}

func (as *authService) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}
	return as.tokenRepo.DeleteByToken(ctx, nil, tokenString)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	studentUUID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	studentID, _ := claims["student_id"].(string)

	stored, err := as.tokenRepo.GetByToken(ctx, nil, tokenString)
	if err != nil {
		return ctx, fmt.Errorf("look up token: %w", err)
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return ctx, fmt.Errorf("token revoked or expired")
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		StudentUUID: studentUUID,
		StudentID:   studentID,
	}), nil
}

func (as *authService) GetStudent(ctx context.Context) (*types.Student, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.StudentID == "" {
		return nil, fmt.Errorf("no authenticated student in context")
	}
	student, err := as.studentRepo.GetByStudentID(ctx, nil, rd.StudentID)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student no longer exists")
	}
	return student, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(student *types.Student) (string, time.Time, error) {
	expiresAt := time.Now().Add(as.accessTTL)
	claims := jwt.MapClaims{
		"sub":        student.ID.String(),
		"student_id": student.StudentID,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (as *authService) SeedDemoStudents(ctx context.Context) error {
	for _, seed := range demoStudents() {
		exists, err := as.studentRepo.StudentIDExists(ctx, nil, seed.studentID)
		if err != nil {
			return fmt.Errorf("check student %s: %w", seed.studentID, err)
		}
		if exists {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", seed.studentID, err)
		}
		courses, err := json.Marshal(seed.courses)
		if err != nil {
			return fmt.Errorf("encode courses for %s: %w", seed.studentID, err)
		}
		if _, err := as.studentRepo.Create(ctx, nil, []*types.Student{{
			ID:           uuid.New(),
			StudentID:    seed.studentID,
			PasswordHash: string(hash),
			Name:         seed.name,
			Email:        seed.email,
			Program:      seed.program,
			Year:         seed.year,
			GPA:          seed.gpa,
			Courses:      datatypes.JSON(courses),
		}}); err != nil {
			return fmt.Errorf("seed student %s: %w", seed.studentID, err)
		}
		as.log.Info("Seeded demo student", "student_id", seed.studentID)
	}
	return nil
}

type demoStudentSeed struct {
	studentID string
	password  string
	name      string
	email     string
	program   string
	year      int
	gpa       float64
	courses   []types.StudentCourse
}

func demoStudents() []demoStudentSeed {
	return []demoStudentSeed{
		{
			studentID: "DEMO001",
			password:  "password123",
			name:      "Demo Student",
			email:     "demo@mockuniversity.edu",
			program:   "Computer Science",
			year:      2,
			gpa:       3.8,
			courses: []types.StudentCourse{
				{Code: "CS301", Name: "Data Structures", Credits: 3, Grade: "A"},
				{Code: "CS302", Name: "Algorithms", Credits: 3, Grade: "A-"},
				{Code: "CS303", Name: "Database Systems", Credits: 3, Grade: "B+"},
				{Code: "CS304", Name: "Web Development", Credits: 3, Grade: "A"},
			},
		},
		{
			studentID: "STUDENT1",
			password:  "mockuniv2025",
			name:      "Jane Smith",
			email:     "jane.smith@mockuniversity.edu",
			program:   "Business Administration",
			year:      3,
			gpa:       3.6,
			courses: []types.StudentCourse{
				{Code: "BUS401", Name: "Strategic Management", Credits: 3, Grade: "B+"},
				{Code: "BUS402", Name: "Corporate Finance", Credits: 3, Grade: "A-"},
				{Code: "BUS403", Name: "Marketing Analytics", Credits: 3, Grade: "A"},
			},
		},
	}
}
