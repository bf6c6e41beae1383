package email

type Message struct {
	To       []string
	CC       []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}
