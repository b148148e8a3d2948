package service

import (
	"errors"
	"log"
	"time"

	"tutorhub_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService loads a small, fixed demo dataset: 5 subjects, 5 tutors
// with profiles and subject listings, 3 students and 4 lesson requests.
// Running it twice with Clear produces identical counts.
type SeedService struct {
	DB *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{DB: db}
}

type seedTutor struct {
	username     string
	email        string
	firstName    string
	lastName     string
	bio          string
	rating       float64
	totalLessons int
	subjects     map[string]int // subject name -> experience years
}

type seedStudent struct {
	username   string
	email      string
	firstName  string
	lastName   string
	gradeLevel int
}

var seedSubjects = []model.Subject{
	{Name: "Mathematics", Description: "Algebra, geometry, calculus and general math"},
	{Name: "Physics", Description: "Classical, modern and applied physics"},
	{Name: "Chemistry", Description: "General, organic and inorganic chemistry"},
	{Name: "English", Description: "Grammar, conversation and writing skills"},
	{Name: "History", Description: "World history and historical methodology"},
}

var seedTutors = []seedTutor{
	{"amelia_tutor", "amelia@example.com", "Amelia", "Ward", "Ten years of experience teaching math, mostly university entrance prep.", 4.8, 150, map[string]int{"Mathematics": 10, "Physics": 6}},
	{"felix_tutor", "felix@example.com", "Felix", "Moreau", "English tutor focused on TOEFL and IELTS preparation.", 4.9, 200, map[string]int{"English": 8}},
	{"marco_tutor", "marco@example.com", "Marco", "Santini", "Chemistry and physics for university students.", 4.6, 85, map[string]int{"Chemistry": 7, "Physics": 5}},
	{"ines_tutor", "ines@example.com", "Ines", "Okafor", "History teacher with a focus on exam technique.", 4.7, 120, map[string]int{"History": 9}},
	{"viktor_tutor", "viktor@example.com", "Viktor", "Hagen", "Math and physics, strong on quantitative subjects.", 4.5, 95, map[string]int{"Mathematics": 5, "Physics": 4}},
}

var seedStudents = []seedStudent{
	{"nora_student", "nora@example.com", "Nora", "Lindqvist", 11},
	{"tom_student", "tom@example.com", "Tom", "Becker", 9},
	{"lea_student", "lea@example.com", "Lea", "Fontaine", 12},
}

const seedPassword = "testpass123"

// Run seeds the database. With clear set, all existing marketplace data
// is wiped first, so repeated runs always end at the same counts.
func (s *SeedService) Run(clear bool) error {
	if clear {
		log.Println("Clearing existing data...")
		for _, m := range []interface{}{
			&model.LessonRequest{},
			&model.TutorSubject{},
			&model.Subject{},
			&model.StudentProfile{},
			&model.TutorProfile{},
			&model.User{},
		} {
			if err := s.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
				return err
			}
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Println("Creating subjects...")
	subjectsByName := make(map[string]*model.Subject, len(seedSubjects))
	for _, data := range seedSubjects {
		subject, err := s.getOrCreateSubject(data)
		if err != nil {
			return err
		}
		subjectsByName[subject.Name] = subject
	}

	log.Println("Creating tutors...")
	tutors := make([]*model.User, 0, len(seedTutors))
	for _, data := range seedTutors {
		tutor, err := s.getOrCreateUser(model.User{
			Username:  data.username,
			Email:     data.email,
			Password:  string(hashed),
			FirstName: data.firstName,
			LastName:  data.lastName,
			Role:      model.RoleTutor,
			Bio:       data.bio,
			Active:    true,
		})
		if err != nil {
			return err
		}
		if err := s.ensureTutorProfile(tutor.ID, data.rating, data.totalLessons); err != nil {
			return err
		}
		for name, years := range data.subjects {
			subject := subjectsByName[name]
			if err := s.ensureTutorSubject(tutor.ID, subject.ID, years); err != nil {
				return err
			}
		}
		tutors = append(tutors, tutor)
	}

	log.Println("Creating students...")
	students := make([]*model.User, 0, len(seedStudents))
	for _, data := range seedStudents {
		grade := data.gradeLevel
		student, err := s.getOrCreateUser(model.User{
			Username:  data.username,
			Email:     data.email,
			Password:  string(hashed),
			FirstName: data.firstName,
			LastName:  data.lastName,
			Role:      model.RoleStudent,
			Active:    true,
		})
		if err != nil {
			return err
		}
		if err := s.ensureStudentProfile(student.ID, &grade); err != nil {
			return err
		}
		students = append(students, student)
	}

	log.Println("Creating lesson requests...")
	base := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	requests := []model.LessonRequest{
		{StudentID: students[0].ID, TutorID: tutors[0].ID, SubjectID: subjectsByName["Mathematics"].ID, Status: model.LessonPending, Message: "I need help preparing for my calculus exam.", PreferredDate: base, DurationHours: 2},
		{StudentID: students[0].ID, TutorID: tutors[1].ID, SubjectID: subjectsByName["English"].ID, Status: model.LessonApproved, Message: "Looking for weekly conversation practice.", PreferredDate: base.Add(24 * time.Hour), DurationHours: 1},
		{StudentID: students[1].ID, TutorID: tutors[2].ID, SubjectID: subjectsByName["Chemistry"].ID, Status: model.LessonPending, Message: "Struggling with organic chemistry basics.", PreferredDate: base.Add(72 * time.Hour), DurationHours: 2},
		{StudentID: students[2].ID, TutorID: tutors[3].ID, SubjectID: subjectsByName["History"].ID, Status: model.LessonRejected, Message: "Need a crash course before finals.", PreferredDate: base.Add(96 * time.Hour), DurationHours: 3},
	}
	for i := range requests {
		if err := s.ensureLessonRequest(&requests[i]); err != nil {
			return err
		}
	}

	log.Println("Seeding complete")
	return nil
}

func (s *SeedService) getOrCreateSubject(data model.Subject) (*model.Subject, error) {
	var subject model.Subject
	err := s.DB.Where("name = ?", data.Name).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		subject = data
		return &subject, s.DB.Create(&subject).Error
	}
	return &subject, err
}

func (s *SeedService) getOrCreateUser(data model.User) (*model.User, error) {
	var user model.User
	err := s.DB.Where("username = ?", data.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = data
		return &user, s.DB.Create(&user).Error
	}
	return &user, err
}

func (s *SeedService) ensureTutorProfile(userID uint, rating float64, totalLessons int) error {
	var profile model.TutorProfile
	err := s.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.TutorProfile{UserID: userID, Rating: rating, TotalLessons: totalLessons}
		return s.DB.Create(&profile).Error
	}
	return err
}

func (s *SeedService) ensureStudentProfile(userID uint, gradeLevel *int) error {
	var profile model.StudentProfile
	err := s.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.StudentProfile{UserID: userID, GradeLevel: gradeLevel}
		return s.DB.Create(&profile).Error
	}
	return err
}

func (s *SeedService) ensureTutorSubject(tutorID, subjectID uint, years int) error {
	var ts model.TutorSubject
	err := s.DB.Where("tutor_id = ? AND subject_id = ?", tutorID, subjectID).First(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ts = model.TutorSubject{TutorID: tutorID, SubjectID: subjectID, ExperienceYears: years}
		return s.DB.Create(&ts).Error
	}
	return err
}

func (s *SeedService) ensureLessonRequest(data *model.LessonRequest) error {
	var lr model.LessonRequest
	err := s.DB.Where("student_id = ? AND tutor_id = ? AND subject_id = ?", data.StudentID, data.TutorID, data.SubjectID).First(&lr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.Create(data).Error
	}
	return err
}
