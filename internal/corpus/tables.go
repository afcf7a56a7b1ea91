package corpus

var letterSubjects = []string{
	"Confirmation of Employment",
	"Change of Address Notice",
	"Request for Account Review",
	"Reference for Rental Application",
	"Notice of Policy Renewal",
	"Follow-up on Recent Meeting",
	"Thank You for Your Application",
	"Updated Billing Arrangement",
	"Invitation to Annual Review",
	"Acknowledgement of Payment",
}

var letterParagraphs = []string{
	"I am writing to confirm the details we discussed during our conversation last week. As agreed, the revised schedule will take effect at the start of next month, and all related documents will be forwarded to your office for signature.",
	"Thank you for your prompt response to our earlier correspondence. We have reviewed the information you provided and are pleased to inform you that your request has been approved without further conditions.",
	"Please find enclosed a copy of the statement for your records. Should you notice any discrepancy, kindly contact our customer service team within thirty days so that we can investigate and correct the matter.",
	"We appreciate your continued trust in our services. In line with our commitment to transparency, we would like to outline the changes that will apply to your account from the next billing cycle.",
	"This letter serves as confirmation that the above named individual has been employed with our organization in a full-time capacity. Their responsibilities include coordinating daily operations and supporting the regional team.",
	"Following the inspection carried out at the property, we are satisfied that all required repairs have been completed to an acceptable standard. The deposit will be released in accordance with the terms of the agreement.",
	"We regret to inform you that the requested item is currently out of stock. We expect new inventory within the next two weeks and will notify you as soon as your order is ready to ship.",
	"If you have any questions regarding this notice, please do not hesitate to reach out by phone or email. Our office hours are Monday through Friday, nine in the morning until five in the afternoon.",
	"As part of our annual review process, we kindly ask that you update your contact details and confirm your preferred method of communication. This helps us ensure that important notices reach you on time.",
	"On behalf of the entire team, I would like to thank you for your contribution to the project. Your attention to detail and willingness to help others made a noticeable difference to the final result.",
	"The committee met on the date referenced above and considered your application in full. After careful deliberation, the committee has decided to grant the requested extension for a period of ninety days.",
	"Kindly return the signed form in the envelope provided at your earliest convenience. Once received, we will process the update and send a written confirmation to the address on file.",
}

var chapterTitles = []string{
	"The Long Road North",
	"A Quiet Harbor",
	"Letters from the Valley",
	"The Winter Market",
	"Lanterns at Dusk",
	"An Unexpected Guest",
	"The Keeper of Maps",
	"Beneath the Old Bridge",
	"Salt and Cedar",
	"The Last Train Home",
}

var bookParagraphs = []string{
	"The morning fog had not yet lifted when Eleanor stepped onto the platform. She pulled her coat tighter and watched the lamps along the track flicker out one by one, as if the town itself were reluctant to wake.",
	"Nobody in the village could remember when the lighthouse had last been lit. Children told stories about the keeper who vanished during a storm, and their parents, who had told the same stories, did nothing to correct them.",
	"He counted the coins twice before sliding them across the counter. The shopkeeper did not look up from his ledger, but a faint smile suggested he had seen the gesture many times before and knew exactly what it meant.",
	"By the third day the river had risen past the second step of the mill. The miller walked the bank each evening with a lantern, measuring the water with a notched stick and writing the numbers in a small leather book.",
	"There is a particular silence that follows heavy snow, and Thomas had come to love it. It erased the sound of the road and the neighbors and left only the creak of the stove and the slow ticking of the clock above the door.",
	"The letter arrived without a return address. Margaret turned it over several times, studying the handwriting, before she finally opened it at the kitchen table with a butter knife and unfolded the single page inside.",
	"They reached the ridge just as the sun dipped below the far hills. Below them the valley lay in shadow, dotted with the small yellow windows of farmhouses, and for a long while neither of them spoke.",
	"The library smelled of dust and old glue. Rows of shelves leaned slightly toward one another, and in the narrow aisles the afternoon light fell in long stripes across the worn wooden floor.",
	"Every summer the fair came to town with its painted wagons and its brass band. The same man always ran the ring toss, and every summer he claimed it was his final season before retiring to the coast.",
	"She had been told that the key would open any door in the house, but in all her years there she had found only one lock it refused to turn. That door stood at the end of the upstairs hall, painted the same pale green as the walls.",
}

var diagnoses = []string{
	"Acute upper respiratory infection",
	"Seasonal allergic rhinitis",
	"Lumbar muscle strain",
	"Viral gastroenteritis",
	"Mild ankle sprain",
	"Tension headache",
	"Acute bronchitis",
	"Conjunctivitis",
	"Influenza-like illness",
	"Minor laceration, sutured",
}

var medicalParagraphs = []string{
	"The patient was seen in clinic today and examined. Vital signs were within normal limits. The patient is advised to rest, maintain adequate fluid intake and avoid strenuous activity until symptoms resolve.",
	"Please excuse the patient from work or school for the dates indicated below. The patient may return to normal duties on the return date provided symptoms have improved and no fever is present for twenty-four hours.",
	"Over-the-counter analgesics may be used as directed for discomfort. If symptoms worsen, or if new symptoms develop, the patient should return to the clinic or seek urgent care without delay.",
	"A follow-up appointment has been recommended to reassess the condition. Light activity may be resumed gradually as tolerated. Heavy lifting should be avoided for the duration indicated on this note.",
	"The patient reports improvement since the previous visit. Examination findings are consistent with the working diagnosis. No further testing is required at this time and the current plan of care will continue.",
	"This note is provided at the request of the patient for the purpose of verifying attendance at a medical appointment. Clinical details have been limited to those necessary for that purpose.",
}

var noticeTitles = []string{
	"Community Notice",
	"Building Maintenance Update",
	"Membership Information",
	"Event Announcement",
	"Service Bulletin",
	"Important Reminder",
	"Public Information Sheet",
}

var genericParagraphs = []string{
	"Residents are reminded that scheduled maintenance of the water supply will take place next week. Supply may be interrupted for short periods between nine in the morning and three in the afternoon.",
	"The annual general meeting will be held in the main hall. All members are encouraged to attend. Light refreshments will be served following the formal part of the evening.",
	"Please keep this document for your records. It contains information that may be required when contacting the office or when completing future forms.",
	"Parking in the marked bays is reserved for permit holders only. Vehicles without a valid permit displayed may be issued a notice or removed at the owner's expense.",
	"Registration for the upcoming season is now open. Forms can be collected from the front desk or completed online. Early registration closes at the end of the month.",
	"We are committed to providing a safe and welcoming environment for everyone. Any concerns should be reported to a staff member, who will respond as quickly as possible.",
	"Lost property is held at reception for thirty days. Items not collected within this period will be donated to a local charity or disposed of responsibly.",
	"Opening hours will change during the holiday period. Updated times are posted at the entrance and will also be announced on the community board.",
}
