package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Student{},
		&Subscription{},
		&SubscriptionStatus{},
		&Teacher{},
		&PersonalChat{},
		&Message{},
		&GeneralSubject{},
		&Class{},
		&ClassSubject{},
		&Topic{},
		&SubjectClassTopic{},
		&TrackWay{},
		&QuizType{},
		&Question{},
		&Answer{},
		&Quiz{},
		&QuizQuestionAnswer{},
	}
}
