package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"dfseducation/internal/model"
	"dfseducation/internal/repository/sqlrepo"
)

// flushOrder lists tables child-first so deletes respect foreign keys.
var flushOrder = []string{
	"application_status_history",
	"jw02_forms",
	"admission_letters",
	"application_payments",
	"applications",
	"wallet_transactions",
	"withdrawal_requests",
	"wallets",
	"notifications",
	"sessions",
	"office_regions",
	"bank_accounts",
	"scholarships",
	"offices",
	"users",
}

func seedCmd() *cobra.Command {
	var flush bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with realistic sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if flush {
				fmt.Fprintln(cmd.OutOrStdout(), "flushing existing data")
				for _, table := range flushOrder {
					if _, err := db.ExecContext(cmd.Context(), "DELETE FROM "+table); err != nil {
						return fmt.Errorf("flush %s: %w", table, err)
					}
				}
			}

			s := &seeder{
				users:        sqlrepo.NewUserSQL(db),
				scholarships: sqlrepo.NewScholarshipSQL(db),
				applications: sqlrepo.NewApplicationSQL(db),
				payments:     sqlrepo.NewPaymentSQL(db),
				wallets:      sqlrepo.NewWalletSQL(db),
				offices:      sqlrepo.NewOfficeSQL(db),
				out:          cmd.OutOrStdout(),
			}
			return s.run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&flush, "flush", false, "delete all existing data before seeding")
	return cmd
}

type seeder struct {
	users        *sqlrepo.UserSQL
	scholarships *sqlrepo.ScholarshipSQL
	applications *sqlrepo.ApplicationSQL
	payments     *sqlrepo.PaymentSQL
	wallets      *sqlrepo.WalletSQL
	offices      *sqlrepo.OfficeSQL
	out          io.Writer
}

func (s *seeder) logf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *seeder) run(ctx context.Context) error {
	users, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}
	if err := s.seedBankAccounts(ctx); err != nil {
		return err
	}
	scholarships, err := s.seedScholarships(ctx)
	if err != nil {
		return err
	}
	if err := s.seedOffices(ctx); err != nil {
		return err
	}
	if err := s.seedApplications(ctx, users, scholarships); err != nil {
		return err
	}
	s.logf("seed complete")
	return nil
}

type seedUsers struct {
	agent    *model.User
	hq       *model.User
	students []*model.User
}

// user creates an account unless the username already exists.
func (s *seeder) user(ctx context.Context, username, email, first, last, role, password, phone string, super bool) (*model.User, error) {
	if existing, err := s.users.FindByUsername(ctx, username); err == nil {
		return existing, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return s.users.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Phone:        phone,
		Role:         role,
		Status:       model.UserActive,
		IsSuperuser:  super,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *seeder) seedUsers(ctx context.Context) (*seedUsers, error) {
	s.logf("creating users")

	if _, err := s.user(ctx, "admin", "admin@educonsult.com", "System", "Admin", model.RoleUser, "admin123", "", true); err != nil {
		return nil, err
	}
	if _, err := s.user(ctx, "sarah_office", "sarah@educonsult.com", "Sarah", "Williams", model.RoleOffice, "office123", "", false); err != nil {
		return nil, err
	}
	agent, err := s.user(ctx, "li_agent", "li.wei@educonsult.com", "Li", "Wei", model.RoleAgent, "agent123", "+86-138-0000-1111", false)
	if err != nil {
		return nil, err
	}
	hq, err := s.user(ctx, "chen_hq", "chen@educonsult.com", "Chen", "Ming", model.RoleHeadquarters, "hq123", "+86-139-0000-3333", false)
	if err != nil {
		return nil, err
	}

	studentRows := [][4]string{
		{"john_doe", "john.doe@student.com", "John", "Doe"},
		{"maria_garcia", "maria@student.com", "Maria", "Garcia"},
		{"fatima_ali", "fatima@student.com", "Fatima", "Ali"},
		{"omar_khan", "omar@student.com", "Omar", "Khan"},
	}
	res := &seedUsers{agent: agent, hq: hq}
	for _, row := range studentRows {
		u, err := s.user(ctx, row[0], row[1], row[2], row[3], model.RoleUser, "student123", "", false)
		if err != nil {
			return nil, err
		}
		res.students = append(res.students, u)
	}
	return res, nil
}

func (s *seeder) seedBankAccounts(ctx context.Context) error {
	s.logf("creating bank accounts")

	existing, err := s.payments.ListBankAccounts(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	accounts := []model.BankAccount{
		{BankName: "Bank of China", AccountNumber: "6222021234567890", AccountHolderName: "EduConsult International", IBAN: "CN12BKCH12345678901234", SwiftCode: "BKCHCNBJ"},
		{BankName: "ICBC", AccountNumber: "6212261234567891", AccountHolderName: "EduConsult Ltd", IBAN: "CN34ICBK23456789012345", SwiftCode: "ICBKCNBJ"},
		{BankName: "China Construction Bank", AccountNumber: "6227001234567892", AccountHolderName: "EduConsult Services", SwiftCode: "PCBCCNBJ"},
	}
	for _, a := range accounts {
		a.Status = model.BankAccountActive
		a.CreatedAt = now
		a.UpdatedAt = now
		if _, err := s.payments.CreateBankAccount(ctx, &a); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedScholarships(ctx context.Context) ([]model.Scholarship, error) {
	s.logf("creating scholarships")

	now := time.Now().UTC()
	data := []model.Scholarship{
		{
			Name:            "Chinese Government Scholarship - Full Ride",
			Description:     "The Chinese Government Scholarship (CGS) is a prestigious program covering tuition, accommodation, living expenses, and medical insurance for international students.",
			City:            "Beijing",
			Major:           "Computer Science",
			Degree:          model.DegreeMaster,
			Language:        "English",
			ScholarshipType: model.ScholarshipFull,
			Deadline:        now.AddDate(0, 0, 90),
			Semester:        model.SemesterFall,
			Price:           decimal.RequireFromString("500.00"),
			Eligibility:     "Bachelor's degree with GPA >= 3.0. Age under 35. Non-Chinese citizen.",
			Note:            "HSK 4 required for Chinese-taught programs.",
			AgentCommission: decimal.RequireFromString("200.00"),
			HQCommission:    decimal.RequireFromString("150.00"),
		},
		{
			Name:            "Shanghai Municipal Scholarship",
			Description:     "Full tuition waiver and monthly stipend for students enrolling in top Shanghai universities including Fudan and SJTU.",
			City:            "Shanghai",
			Major:           "Business Administration",
			Degree:          model.DegreeBachelor,
			Language:        "English",
			ScholarshipType: model.ScholarshipFull,
			Deadline:        now.AddDate(0, 0, 60),
			Semester:        model.SemesterFall,
			Price:           decimal.RequireFromString("350.00"),
			Eligibility:     "High school diploma with excellent grades. IELTS 6.0 or equivalent.",
			AgentCommission: decimal.RequireFromString("150.00"),
			HQCommission:    decimal.RequireFromString("100.00"),
		},
		{
			Name:            "Zhejiang University Merit Scholarship",
			Description:     "Merit-based scholarship covering tuition and providing a living allowance for outstanding PhD candidates at Zhejiang University.",
			City:            "Hangzhou",
			Major:           "Mechanical Engineering",
			Degree:          model.DegreePhD,
			Language:        "English",
			ScholarshipType: model.ScholarshipMerit,
			Deadline:        now.AddDate(0, 0, 120),
			Semester:        model.SemesterSpring,
			Price:           decimal.RequireFromString("600.00"),
			Eligibility:     "Master's degree. Published research in relevant field. Age under 40.",
			Note:            "Research proposal required.",
			AgentCommission: decimal.RequireFromString("250.00"),
			HQCommission:    decimal.RequireFromString("200.00"),
		},
		{
			Name:            "Guangdong Provincial Scholarship",
			Description:     "Partial scholarship covering 50% of tuition for students at universities in Guangdong province including SYSU and SCUT.",
			City:            "Guangzhou",
			Major:           "International Trade",
			Degree:          model.DegreeBachelor,
			Language:        "Chinese",
			ScholarshipType: model.ScholarshipPartial,
			Deadline:        now.AddDate(0, 0, 45),
			Semester:        model.SemesterFall,
			Price:           decimal.RequireFromString("300.00"),
			Eligibility:     "High school diploma. HSK 4 required. Age 18-25.",
			Note:            "Chinese language proficiency mandatory.",
			AgentCommission: decimal.RequireFromString("120.00"),
			HQCommission:    decimal.RequireFromString("80.00"),
		},
		{
			Name:            "Tsinghua University Presidential Scholarship",
			Description:     "Top-tier scholarship for exceptional students pursuing a Master's in Data Science at Tsinghua University, covering full tuition plus generous stipend.",
			City:            "Beijing",
			Major:           "Data Science",
			Degree:          model.DegreeMaster,
			Language:        "English",
			ScholarshipType: model.ScholarshipFull,
			Deadline:        now.AddDate(0, 0, 75),
			Semester:        model.SemesterSpring,
			Price:           decimal.RequireFromString("800.00"),
			Eligibility:     "Bachelor's degree in CS, Math, or related field. GPA >= 3.5. GRE recommended.",
			Note:            "Only 10 positions available.",
			AgentCommission: decimal.RequireFromString("300.00"),
			HQCommission:    decimal.RequireFromString("250.00"),
		},
		{
			Name:            "Wuhan University Cultural Exchange Scholarship",
			Description:     "Scholarship for students interested in Chinese culture and language studies at Wuhan University, including accommodation and stipend.",
			City:            "Wuhan",
			Major:           "Chinese Language & Culture",
			Degree:          model.DegreeBachelor,
			Language:        "Chinese",
			ScholarshipType: model.ScholarshipFull,
			Deadline:        now.AddDate(0, 0, 30),
			Semester:        model.SemesterSummer,
			Price:           decimal.RequireFromString("250.00"),
			Eligibility:     "High school diploma. Interest in Chinese culture. Age 18-30.",
			Note:            "Includes summer intensive program.",
			AgentCommission: decimal.RequireFromString("100.00"),
			HQCommission:    decimal.RequireFromString("75.00"),
		},
	}

	var out []model.Scholarship
	for _, sch := range data {
		created, err := s.scholarships.Create(ctx, &sch)
		if err != nil {
			return nil, err
		}
		out = append(out, *created)
	}
	return out, nil
}

func (s *seeder) seedOffices(ctx context.Context) error {
	s.logf("creating offices")

	existing, err := s.offices.List(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	head, err := s.offices.Create(ctx, &model.Office{
		Name:      "Beijing Head Office",
		Code:      "BJ-HQ",
		City:      "Beijing",
		Country:   "China",
		Address:   "88 Jianguo Road, Chaoyang District",
		Phone:     "+86-10-8000-0001",
		Email:     "beijing@educonsult.com",
		IsDefault: true,
		IsActive:  true,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}
	cairo, err := s.offices.Create(ctx, &model.Office{
		Name:      "Cairo Branch",
		Code:      "EG-CAI",
		City:      "Cairo",
		Country:   "Egypt",
		Address:   "12 Tahrir Square",
		Phone:     "+20-2-2000-0002",
		Email:     "cairo@educonsult.com",
		IsActive:  true,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	regions := []model.OfficeRegion{
		{OfficeID: head.ID, CountryCode: "CN", CountryName: "China"},
		{OfficeID: cairo.ID, CountryCode: "EG", CountryName: "Egypt"},
		{OfficeID: cairo.ID, CountryCode: "SA", CountryName: "Saudi Arabia"},
	}
	for _, r := range regions {
		if _, err := s.offices.CreateRegion(ctx, &r); err != nil {
			return err
		}
	}
	return nil
}

// seedApplications creates a handful of applications spread across the
// workflow, including one fully completed with settled commissions.
func (s *seeder) seedApplications(ctx context.Context, users *seedUsers, scholarships []model.Scholarship) error {
	if len(users.students) < 4 || len(scholarships) < 4 {
		return fmt.Errorf("not enough seed users or scholarships")
	}
	s.logf("creating applications")

	now := time.Now().UTC()
	docs := func(userID int64) model.Documents {
		var d model.Documents
		for _, f := range model.DocumentFields {
			d.Set(f, fmt.Sprintf("application_documents/user_%d/%s_seed.pdf", userID, f))
		}
		return d
	}

	// Draft, submitted, approved in progress, and complete.
	if _, err := s.applications.Create(ctx, &model.Application{
		ScholarshipID: scholarships[0].ID,
		UserID:        users.students[0].ID,
		Status:        model.StatusDraft,
		AppliedDate:   now.AddDate(0, 0, -2),
	}); err != nil {
		return err
	}

	if _, err := s.applications.Create(ctx, &model.Application{
		ScholarshipID: scholarships[1].ID,
		UserID:        users.students[1].ID,
		Status:        model.StatusSubmitted,
		AppliedDate:   now.AddDate(0, 0, -5),
		Documents:     docs(users.students[1].ID),
	}); err != nil {
		return err
	}

	deadline := now.AddDate(0, 0, 10)
	approved := now.AddDate(0, 0, -7)
	if _, err := s.applications.Create(ctx, &model.Application{
		ScholarshipID:   scholarships[2].ID,
		UserID:          users.students[2].ID,
		Status:          model.StatusInProgress,
		AppliedDate:     now.AddDate(0, 0, -20),
		Documents:       docs(users.students[2].ID),
		AssignedAgentID: &users.agent.ID,
		AssignedHQID:    &users.hq.ID,
		ApprovedDate:    &approved,
		Deadline:        &deadline,
	}); err != nil {
		return err
	}

	completedAt := now.AddDate(0, 0, -1)
	complete, err := s.applications.Create(ctx, &model.Application{
		ScholarshipID:   scholarships[3].ID,
		UserID:          users.students[3].ID,
		Status:          model.StatusComplete,
		AppliedDate:     now.AddDate(0, 0, -40),
		Documents:       docs(users.students[3].ID),
		AssignedAgentID: &users.agent.ID,
		AssignedHQID:    &users.hq.ID,
		ApprovedDate:    &approved,
		CompletedDate:   &completedAt,
	})
	if err != nil {
		return err
	}

	// Settled commissions for the completed application.
	sch := scholarships[3]
	desc := fmt.Sprintf("Commission for application #%d (%s)", complete.ID, sch.Name)
	if err := s.wallets.CreditUpcoming(ctx, users.agent.ID, complete.ID, sch.AgentCommission, desc); err != nil {
		return err
	}
	if err := s.wallets.SettleUpcoming(ctx, users.agent.ID, complete.ID, sch.AgentCommission, desc); err != nil {
		return err
	}
	if err := s.wallets.CreditUpcoming(ctx, users.hq.ID, complete.ID, sch.HQCommission, desc); err != nil {
		return err
	}
	if err := s.wallets.SettleUpcoming(ctx, users.hq.ID, complete.ID, sch.HQCommission, desc); err != nil {
		return err
	}
	return nil
}
