package fields

import (
	"fmt"

	"github.com/garyjia/docsynth/internal/randsrc"
)

// address is a postal address split for templates that lay lines out separately
type address struct {
	Street string
	City   string
	State  string
	Zip    string
}

func fakeAddress(r *randsrc.Source) address {
	f := r.Faker()
	return address{
		Street: f.Street(),
		City:   f.City(),
		State:  f.StateAbr(),
		Zip:    f.Zip(),
	}
}

func (a address) cityLine() string {
	return fmt.Sprintf("%s, %s %s", a.City, a.State, a.Zip)
}

// HTML joins the lines with a line break tag
func (a address) HTML() string {
	return a.Street + "<br>" + a.cityLine()
}

func fakeName(r *randsrc.Source) (first, last string) {
	f := r.Faker()
	return f.FirstName(), f.LastName()
}
