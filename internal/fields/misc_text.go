package fields

import (
	"fmt"

	"github.com/garyjia/docsynth/internal/corpus"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
)

// paragraphs draws n distinct paragraphs of a topic, repeating only when the pool is smaller than n
func paragraphs(ctx *Context, topic corpus.Topic, n int) ([]string, error) {
	pool, err := ctx.Corpus.Topic(topic)
	if err != nil {
		return nil, err
	}
	shuffled := append([]string(nil), pool...)
	randsrc.Shuffle(ctx.Rand, shuffled)

	out := make([]string, n)
	for i := range out {
		out[i] = shuffled[i%len(shuffled)]
	}
	return out, nil
}

func pickOr(r *randsrc.Source, pool []string, fallback string) string {
	if len(pool) == 0 {
		return fallback
	}
	return randsrc.Pick(r, pool)
}

func letter(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	body, err := paragraphs(ctx, corpus.TopicLetter, r.Int(2, 4))
	if err != nil {
		return nil, err
	}
	senderFirst, senderLast := fakeName(r)
	recipientFirst, recipientLast := fakeName(r)
	date := r.DateBetween(ctx.Now.AddDate(0, 0, -365), ctx.Now)

	m := newMiscMapping(models.SubtypeLetter).
		Set("sender_name", senderFirst+" "+senderLast).
		Set("sender_title", f.JobTitle()).
		Set("sender_company", f.Company()).
		Set("sender_address", fakeAddress(r).HTML()).
		Set("sender_phone", f.PhoneFormatted()).
		Set("sender_email", f.Email()).
		Set("recipient_name", recipientFirst+" "+recipientLast).
		Set("recipient_address", fakeAddress(r).HTML()).
		Set("date", date.Format(DateLayout)).
		Set("subject", pickOr(r, ctx.Corpus.LetterSubjects, "Correspondence")).
		Set("salutation", fmt.Sprintf("Dear %s %s,", randsrc.Pick(r, []string{"Mr.", "Ms.", "Mx.", "Dr."}), recipientLast)).
		Set("paragraphs", body).
		Set("closing", randsrc.Pick(r, letterClosings))

	return m, nil
}

func bookPage(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	body, err := paragraphs(ctx, corpus.TopicBook, r.Int(3, 5))
	if err != nil {
		return nil, err
	}
	chapter := r.Int(1, 30)

	m := newMiscMapping(models.SubtypeBookPage).
		Set("book_title", f.BookTitle()).
		Set("author", f.BookAuthor()).
		Set("chapter_number", chapter).
		Set("chapter_title", pickOr(r, ctx.Corpus.ChapterTitles, fmt.Sprintf("Chapter %d", chapter))).
		Set("page_number", r.Int(chapter*8, chapter*8+20)).
		Set("chapter_start", r.Chance(0.3)).
		Set("paragraphs", body)

	return m, nil
}

func medicalNote(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	notes, err := paragraphs(ctx, corpus.TopicMedical, r.Int(1, 2))
	if err != nil {
		return nil, err
	}
	_, doctorLast := fakeName(r)
	patientFirst, patientLast := fakeName(r)
	visit := r.DateBetween(ctx.Now.AddDate(0, 0, -14), ctx.Now)
	returnDate := visit.AddDate(0, 0, r.Int(1, 7))
	dob := r.DateBetween(ctx.Now.AddDate(-85, 0, 0), ctx.Now.AddDate(-5, 0, 0))
	clinicAddr := fakeAddress(r)

	m := newMiscMapping(models.SubtypeMedicalNote).
		Set("clinic_name", clinicAddr.City+" "+randsrc.Pick(r, clinicSuffixes)).
		Set("clinic_address", clinicAddr.HTML()).
		Set("clinic_phone", f.PhoneFormatted()).
		Set("doctor_name", "Dr. "+doctorLast).
		Set("license_number", r.Pattern("AA999999")).
		Set("patient_name", patientFirst+" "+patientLast).
		Set("patient_dob", dob.Format(DateLayout)).
		Set("visit_date", visit.Format(DateLayout)).
		Set("diagnosis", pickOr(r, ctx.Corpus.Diagnoses, "General examination")).
		Set("notes", notes).
		Set("restrictions", randsrc.Pick(r, activityRestrictions)).
		Set("return_date", returnDate.Format(DateLayout))

	return m, nil
}

func genericDocument(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	body, err := paragraphs(ctx, corpus.TopicGeneric, r.Int(2, 4))
	if err != nil {
		return nil, err
	}
	date := r.DateBetween(ctx.Now.AddDate(0, 0, -90), ctx.Now)

	m := newMiscMapping(models.SubtypeGeneric).
		Set("title", pickOr(r, ctx.Corpus.NoticeTitles, "Notice")).
		Set("organization", f.Company()).
		Set("organization_address", fakeAddress(r).HTML()).
		Set("reference_number", r.Pattern("AA-99999")).
		Set("date", date.Format(DateLayout)).
		Set("paragraphs", body).
		Set("contact_phone", f.PhoneFormatted()).
		Set("contact_email", f.Email())

	return m, nil
}
