package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ptarn/cadence/internal/analytics"
	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/notify"
	"github.com/ptarn/cadence/internal/persist"
	"github.com/ptarn/cadence/internal/report"
	"github.com/ptarn/cadence/internal/ui/dashboard"
)

// --- company ---

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a company",
	Long: `Add a company.

Without --name the command opens an interactive form. The periodicity
defaults to the configured default communication period.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		name, _ := cmd.Flags().GetString("name")
		periodicity, _ := cmd.Flags().GetInt("periodicity")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")

		if periodicity == 0 {
			periodicity = a.store.State().Settings.DefaultCommunicationPeriod
		}

		if name == "" {
			periodStr := strconv.Itoa(periodicity)
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Company name").Value(&name),
				huh.NewInput().Title("Periodicity (days)").Value(&periodStr),
				huh.NewInput().Title("Email").Value(&email),
				huh.NewInput().Title("Phone").Value(&phone),
			))
			if err := form.Run(); err != nil {
				return err
			}
			if periodicity, err = strconv.Atoi(periodStr); err != nil {
				return fmt.Errorf("periodicity must be a number: %w", err)
			}
		}

		company, err := a.store.AddCompany(model.Company{
			Name:                     name,
			CommunicationPeriodicity: periodicity,
			Email:                    email,
			Phone:                    phone,
		})
		if err != nil {
			return err
		}
		printSuccess("Added company %s (%s)", company.Name, company.ID)
		return nil
	},
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies with their due-date status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		search, _ := cmd.Flags().GetString("search")
		bucket, _ := cmd.Flags().GetString("bucket")
		sortBy, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")

		rows := analytics.FilterCompanies(a.store.State(), analytics.CompanyFilter{
			Search:   search,
			Bucket:   bucket,
			SortBy:   sortBy,
			SortDesc: desc,
		}, model.Today())

		for _, row := range rows {
			state := "on track"
			switch {
			case row.Status.IsOverdue:
				state = colorize(colorRed, "OVERDUE")
			case row.Status.IsDueToday:
				state = colorize(colorYellow, "DUE TODAY")
			}
			last := "never"
			next := "-"
			if !row.LastCommunication.IsZero() {
				last = row.LastCommunication.String()
				next = row.NextDue.String()
			}
			fmt.Fprintf(os.Stdout, "%s  %-30s %-10s last=%s next=%s every=%dd\n",
				row.Company.ID, row.Company.Name, state, last, next,
				row.Company.CommunicationPeriodicity)
		}
		return nil
	},
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a company (full replacement)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		existing := a.store.State().CompanyByID(args[0])
		if existing == nil {
			return fmt.Errorf("company %s not found", args[0])
		}
		updated := *existing
		if cmd.Flags().Changed("name") {
			updated.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("periodicity") {
			updated.CommunicationPeriodicity, _ = cmd.Flags().GetInt("periodicity")
		}
		if cmd.Flags().Changed("email") {
			updated.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("phone") {
			updated.Phone, _ = cmd.Flags().GetString("phone")
		}

		if err := a.store.UpdateCompany(updated); err != nil {
			return err
		}
		printSuccess("Updated company %s", updated.Name)
		return nil
	},
}

var companyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a company and its communications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.DeleteCompany(args[0]); err != nil {
			return err
		}
		printSuccess("Deleted company %s and its communication history", args[0])
		return nil
	},
}

// --- method ---

var methodCmd = &cobra.Command{
	Use:   "method",
	Short: "Manage communication methods",
}

var methodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a communication method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		description, _ := cmd.Flags().GetString("description")
		sequence, _ := cmd.Flags().GetInt("sequence")
		mandatory, _ := cmd.Flags().GetBool("mandatory")

		method, err := a.store.AddMethod(model.CommunicationMethod{
			Name:        args[0],
			Description: description,
			Sequence:    sequence,
			Mandatory:   mandatory,
		})
		if err != nil {
			return err
		}
		printSuccess("Added method %s (%s)", method.Name, method.ID)
		return nil
	},
}

var methodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List communication methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, m := range a.store.State().CommunicationMethods {
			flag := ""
			if m.Mandatory {
				flag = " [mandatory]"
			}
			fmt.Fprintf(os.Stdout, "%s  %2d. %s%s - %s\n", m.ID, m.Sequence, m.Name, flag, m.Description)
		}
		return nil
	},
}

var methodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a communication method",
	Long: `Delete a communication method.

Logged communications keep the method name as text, so history is
unaffected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.DeleteMethod(args[0]); err != nil {
			return err
		}
		printSuccess("Deleted method %s", args[0])
		return nil
	},
}

// --- log ---

var logCmd = &cobra.Command{
	Use:   "log <company-id>",
	Short: "Log a communication with a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		method, _ := cmd.Flags().GetString("method")
		notes, _ := cmd.Flags().GetString("notes")
		dateStr, _ := cmd.Flags().GetString("date")
		responseStr, _ := cmd.Flags().GetString("response-date")

		date := model.Today()
		commStatus := model.CommunicationCompleted
		if dateStr != "" {
			if date, err = model.ParseDate(dateStr); err != nil {
				return err
			}
			if date.After(model.Today()) {
				commStatus = model.CommunicationScheduled
			}
		}

		comm := model.Communication{
			CompanyID: args[0],
			Date:      date,
			Type:      method,
			Notes:     notes,
			Status:    commStatus,
		}
		if responseStr != "" {
			rd, err := model.ParseDate(responseStr)
			if err != nil {
				return err
			}
			comm.ResponseDate = &rd
		}

		logged, err := a.store.AddCommunication(comm)
		if err != nil {
			return err
		}
		printSuccess("Logged %s communication on %s (%s)", logged.Type, logged.Date, logged.ID)
		return nil
	},
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the dashboard summary counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		counts := analytics.Counts(a.store.State(), model.Today())
		printStatus("Overdue", "%d", counts.OverdueCompanies)
		printStatus("Due today", "%d", counts.DueTodayCompanies)
		printStatus("Communications", "%d", counts.TotalCommunications)
		return nil
	},
}

// --- stats ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show communication analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.store.State()
		today := model.Today()

		fmt.Fprintln(os.Stdout, "By type:")
		for _, e := range analytics.CommunicationsByType(state) {
			fmt.Fprintf(os.Stdout, "  %-20s %d\n", e.Key, e.Count)
		}
		fmt.Fprintln(os.Stdout, "By company:")
		for _, e := range analytics.CommunicationsByCompany(state) {
			fmt.Fprintf(os.Stdout, "  %-30s %d\n", e.Key, e.Count)
		}

		resp := analytics.Responses(state)
		fmt.Fprintf(os.Stdout, "Average response time: %.0fh\n", resp.AverageResponseTime.Hours())
		fmt.Fprintf(os.Stdout, "Success rate: %.1f%%\n", resp.SuccessRate)

		if companyID, _ := cmd.Flags().GetString("company"); companyID != "" {
			buckets := analytics.CompanyEngagement(state, companyID, today)
			fmt.Fprintln(os.Stdout, "Engagement (this month first):")
			for i, count := range buckets {
				month := today.Time().AddDate(0, -i, 0).Format("Jan 2006")
				fmt.Fprintf(os.Stdout, "  %-9s %d\n", month, count)
			}
		}
		return nil
	},
}

// --- calendar ---

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show the communication calendar for a month",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		today := model.Today()
		year, month := today.Year, today.Month
		if len(args) == 1 {
			t, err := time.Parse("2006-01", args[0])
			if err != nil {
				return fmt.Errorf("parsing month %q: %w", args[0], err)
			}
			year, month = t.Year(), t.Month()
		}

		state := a.store.State()
		buckets := analytics.MonthEvents(state, year, month, today)
		first := model.NewDate(year, month, 1)
		for day := first; day.Month == month; day = day.AddDays(1) {
			if len(buckets[day]) == 0 {
				continue
			}
			bucket := analytics.DayEvents(state, day, today)
			fmt.Fprintf(os.Stdout, "%s\n", day)
			for _, ev := range bucket.Visible {
				fmt.Fprintf(os.Stdout, "  [%s] %s - %s\n", ev.Class, ev.CompanyName, ev.Communication.Type)
			}
			if bucket.Overflow > 0 {
				fmt.Fprintf(os.Stdout, "  +%d more\n", bucket.Overflow)
			}
		}
		return nil
	},
}

// --- report ---

var reportCmd = &cobra.Command{
	Use:   "report <detailed|summary>",
	Short: "Write a CSV report to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.store.State()
		today := model.Today()
		switch args[0] {
		case "detailed":
			fmt.Fprint(os.Stdout, report.Detailed(state, today))
		case "summary":
			fmt.Fprint(os.Stdout, report.Summary(state, today))
		default:
			return fmt.Errorf("unknown report %q (want detailed or summary)", args[0])
		}
		return nil
	},
}

// --- export / import ---

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the full snapshot as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return persist.Export(out, a.store.State())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the snapshot with a previously exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()

		state, err := persist.Import(f)
		if err != nil {
			return err
		}
		if err := a.store.Load(state); err != nil {
			return err
		}
		printSuccess("Imported %d companies, %d methods, %d communications",
			len(state.Companies), len(state.CommunicationMethods), len(state.Communications))
		return nil
	},
}

// --- watch ---

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the periodic due-date checker",
	Long: `Run the periodic due-date checker.

Each check emits one notification per overdue or due-today company. When
email reminders are enabled in settings, each notification is also written
as an .eml file to the outbox directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var notifiers notify.Multi
		notifiers = append(notifiers, notify.NotifierFunc(func(e notify.Event) {
			printStep("%s: %s", e.Title, e.Body)
		}))
		if a.store.State().Settings.EmailReminders {
			notifiers = append(notifiers, &notify.EmailComposer{
				OutboxDir: a.cfg.OutboxDir,
				From:      a.cfg.ReminderFrom,
				To:        a.cfg.ReminderTo,
				OnError:   func(err error) { printWarning("composing reminder: %v", err) },
			})
		}

		interval := time.Duration(a.cfg.CheckIntervalSec) * time.Second
		watcher := notify.NewWatcher(a.store, notifiers, interval)
		watcher.Start()
		defer watcher.Stop()

		printStep("watching every %s, ctrl+c to stop", interval)
		<-ctx.Done()
		return nil
	},
}

// --- dashboard ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		events := make(chan notify.Event, 16)
		watcher := notify.NewWatcher(a.store, notify.NotifierFunc(func(e notify.Event) {
			select {
			case events <- e:
			default:
			}
		}), time.Duration(a.cfg.CheckIntervalSec)*time.Second)
		watcher.Start()
		defer watcher.Stop()

		m := dashboard.New(a.store, events, 100, 30)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	companyAddCmd.Flags().String("name", "", "company name")
	companyAddCmd.Flags().Int("periodicity", 0, "days between communications")
	companyAddCmd.Flags().String("email", "", "contact email")
	companyAddCmd.Flags().String("phone", "", "contact phone")
	companyCmd.AddCommand(companyAddCmd, companyListCmd, companyUpdateCmd, companyDeleteCmd)

	companyListCmd.Flags().String("search", "", "substring match on name")
	companyListCmd.Flags().String("bucket", analytics.BucketAll, "all, overdue, or today")
	companyListCmd.Flags().String("sort", analytics.SortByNextCommunication, "name or nextCommunication")
	companyListCmd.Flags().Bool("desc", false, "sort descending")

	companyUpdateCmd.Flags().String("name", "", "company name")
	companyUpdateCmd.Flags().Int("periodicity", 0, "days between communications")
	companyUpdateCmd.Flags().String("email", "", "contact email")
	companyUpdateCmd.Flags().String("phone", "", "contact phone")

	methodAddCmd.Flags().String("description", "", "method description")
	methodAddCmd.Flags().Int("sequence", 0, "display order")
	methodAddCmd.Flags().Bool("mandatory", false, "mark as mandatory")
	methodCmd.AddCommand(methodAddCmd, methodListCmd, methodDeleteCmd)

	logCmd.Flags().String("method", "", "communication type (e.g. Email)")
	logCmd.Flags().String("notes", "", "free-form notes")
	logCmd.Flags().String("date", "", "event date YYYY-MM-DD (default today)")
	logCmd.Flags().String("response-date", "", "response date YYYY-MM-DD, if any")

	statsCmd.Flags().String("company", "", "also show the engagement trend for this company id")
}
