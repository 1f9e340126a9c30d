package main

import (
	"context"
	goerrors "errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/config"
	"github.com/jane-devs/final-management/internal/db"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	Email     string
	FirstName string
	LastName  string
}

var seedUsers = []seedUser{
	{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"},
	{Email: "bob@example.com", FirstName: "Bob", LastName: "Martinez"},
	{Email: "carol@example.com", FirstName: "Carol", LastName: "Okafor"},
	{Email: "dave@example.com", FirstName: "Dave", LastName: "Kim"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Team{},
		&model.Membership{},
		&model.Task{},
		&model.Meeting{},
		&model.Comment{},
		&model.Evaluation{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	membershipRepo := repository.NewMembershipRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	meetingRepo := repository.NewMeetingRepository(gormDB)

	users, err := seedDemoUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	alpha, err := seedTeam(ctx, teamRepo, "Team Alpha", "Backend platform squad", "alpha-invite", users[0].ID)
	if err != nil {
		log.Fatalf("Failed to seed team: %v", err)
	}
	beta, err := seedTeam(ctx, teamRepo, "Team Beta", "Mobile delivery squad", "beta-invite", users[1].ID)
	if err != nil {
		log.Fatalf("Failed to seed team: %v", err)
	}

	// Members beyond the owners
	if err := seedMembership(ctx, membershipRepo, alpha.ID, users[2].ID); err != nil {
		log.Fatalf("Failed to seed membership: %v", err)
	}
	if err := seedMembership(ctx, membershipRepo, alpha.ID, users[3].ID); err != nil {
		log.Fatalf("Failed to seed membership: %v", err)
	}
	if err := seedMembership(ctx, membershipRepo, beta.ID, users[2].ID); err != nil {
		log.Fatalf("Failed to seed membership: %v", err)
	}

	if err := seedTasks(ctx, taskRepo, alpha.ID, users[0].ID, users[2].ID); err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}
	if err := seedMeetings(ctx, meetingRepo, alpha.ID, users[0].ID); err != nil {
		log.Fatalf("Failed to seed meetings: %v", err)
	}

	log.Println("Seed completed")
}

// seedDemoUsers creates the demo accounts, skipping any that already exist.
func seedDemoUsers(ctx context.Context, users repository.UserRepository) ([]*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	out := make([]*model.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := users.FindByEmail(ctx, su.Email)
		if err == nil {
			log.Printf("User %s already exists, skipping", su.Email)
			out = append(out, existing)
			continue
		}
		if !goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user := &model.User{
			Email:        su.Email,
			PasswordHash: string(hash),
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			Active:       true,
		}
		if err := users.Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("Created user %s", su.Email)
		out = append(out, user)
	}
	return out, nil
}

func seedTeam(
	ctx context.Context,
	teams repository.TeamRepository,
	name, description, inviteCode string,
	ownerID uuid.UUID,
) (*model.Team, error) {
	existing, err := teams.FindByInviteCode(ctx, inviteCode)
	if err == nil {
		log.Printf("Team %q already exists, skipping", name)
		return existing, nil
	}
	if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	team := &model.Team{
		Name:        name,
		Description: description,
		InviteCode:  inviteCode,
		OwnerID:     ownerID,
	}
	owner := &model.Membership{UserID: ownerID, Role: model.RoleOwner}
	if err := teams.CreateWithOwner(ctx, team, owner); err != nil {
		return nil, err
	}
	log.Printf("Created team %q", name)
	return team, nil
}

func seedMembership(
	ctx context.Context,
	memberships repository.MembershipRepository,
	teamID, userID uuid.UUID,
) error {
	if _, err := memberships.Find(ctx, teamID, userID); err == nil {
		return nil
	} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return memberships.Create(ctx, &model.Membership{
		TeamID: teamID,
		UserID: userID,
		Role:   model.RoleMember,
	})
}

func seedTasks(
	ctx context.Context,
	tasks repository.TaskRepository,
	teamID, creatorID, assigneeID uuid.UUID,
) error {
	existing, err := tasks.ListByTeam(ctx, teamID, repository.TaskFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Tasks already seeded, skipping")
		return nil
	}

	due := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	demo := []model.Task{
		{
			TeamID:      teamID,
			CreatorID:   creatorID,
			AssigneeID:  &assigneeID,
			Title:       "Write onboarding guide",
			Description: "Document the local setup steps for new members.",
			Status:      model.TaskStatusTodo,
			Priority:    model.TaskPriorityMedium,
			DueDate:     &due,
		},
		{
			TeamID:    teamID,
			CreatorID: creatorID,
			Title:     "Review sprint backlog",
			Status:    model.TaskStatusInProgress,
			Priority:  model.TaskPriorityHigh,
		},
	}
	for i := range demo {
		if err := tasks.Create(ctx, &demo[i]); err != nil {
			return err
		}
	}
	log.Printf("Created %d tasks", len(demo))
	return nil
}

func seedMeetings(
	ctx context.Context,
	meetings repository.MeetingRepository,
	teamID, creatorID uuid.UUID,
) error {
	existing, err := meetings.ListByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Meetings already seeded, skipping")
		return nil
	}

	start := time.Now().UTC().AddDate(0, 0, 1).Truncate(time.Hour)
	meeting := &model.Meeting{
		TeamID:      teamID,
		CreatorID:   creatorID,
		Title:       "Weekly sync",
		Description: "Status updates and blockers.",
		Location:    "Room 2B",
		StartTime:   start,
		EndTime:     start.Add(45 * time.Minute),
	}
	if err := meetings.Create(ctx, meeting); err != nil {
		return err
	}
	log.Println("Created weekly sync meeting")
	return nil
}
