// Package person содержит доменную модель контактной записи студента.
// Это ядро бизнес-логики watson - здесь нет зависимостей от хранилища,
// консоли или других внешних слоёв.
//
// # Архитектурные принципы
//
// Запись Person неизменяема: после создания её поля нельзя модифицировать.
// Редактирование - это сборка новой записи через NewPerson с новыми
// значениями полей. Такой подход исключает целый класс ошибок с
// частично обновлённым состоянием.
//
// Все поля-значения (Name, Phone, Email и другие) - это value objects
// с валидацией в конструкторе. Невалидное значение невозможно получить
// иначе как обойдя конструктор.
//
// # Идентичность и равенство
//
// У записи два разных сравнения, и их нельзя путать:
//
//   - IsSamePerson - слабая идентичность по имени. Используется для
//     проверки дубликатов в списке.
//   - Equals - полное структурное равенство по всем видимым полям.
//
// Порядок сортировки задаёт Compare: по сумме итоговых процентов всех
// предметов, по возрастанию. Запись без предметов даёт вклад 0.0.
//
// # Пример использования
//
//	name, err := person.NewName("Alice Tan")
//	if err != nil {
//		// имя не прошло валидацию
//	}
//
//	p, err := person.NewPerson(person.NewPersonParams{
//		ID:      uuid.NewString(),
//		Name:    name,
//		Phone:   phone,
//		Email:   email,
//		Address: addr,
//		Class:   class,
//	})
//
// Свежесозданная запись имеет пустые посещаемость, заметки и предметы:
// p.Attendance().String() вернёт "0/0".
package person
