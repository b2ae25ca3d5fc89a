package cli

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/shopfront/shopfront/pkg/models"
)

// interactive reports whether stdin is a terminal. Without one, commands
// must get their input from flags instead of forms.
func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptLogin collects credentials with a huh form. Pre-filled values
// (from flags) are kept as initial input.
func promptLogin(email, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		),
	)
	return form.Run()
}

// promptProfileEdit collects a full profile update, seeded from the
// current profile so untouched fields round-trip unchanged.
func promptProfileEdit(user *models.User) (models.ProfileUpdate, error) {
	update := models.ProfileUpdate{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Address:   user.Address,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&update.FirstName),
			huh.NewInput().Title("Last name").Value(&update.LastName),
			huh.NewInput().Title("Phone").Value(&update.Phone),
		),
		huh.NewGroup(
			huh.NewInput().Title("Street").Value(&update.Address.Street),
			huh.NewInput().Title("City").Value(&update.Address.City),
			huh.NewInput().Title("State").Value(&update.Address.State),
			huh.NewInput().Title("Zip code").Value(&update.Address.ZipCode),
			huh.NewInput().Title("Country").Value(&update.Address.Country),
		),
	)
	if err := form.Run(); err != nil {
		return models.ProfileUpdate{}, err
	}
	return update, nil
}
